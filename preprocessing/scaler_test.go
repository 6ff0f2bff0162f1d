package preprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gdlinear/data"
	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

func TestMaxAbsScaler_FitTransform(t *testing.T) {
	ds, err := data.NewDatasetWithFeatures([]int{0, 1, 2}, []data.Example{
		data.MustExample(1, map[int]float64{0: 2, 1: -10}),
		data.MustExample(-1, map[int]float64{0: -4, 1: 5}),
	})
	require.NoError(t, err)

	s := NewMaxAbsScaler()
	scaled, err := s.FitTransform(ds)
	require.NoError(t, err)

	assert.Equal(t, map[int]float64{0: 4, 1: 10, 2: 1}, s.MaxAbs, "all-zero feature gets scale 1")
	assert.Equal(t, []int{0, 1, 2}, scaled.FeatureIndices())
	assert.Equal(t, 0.5, scaled.Example(0).Feature(0))
	assert.Equal(t, -1.0, scaled.Example(0).Feature(1))
	assert.Equal(t, -1.0, scaled.Example(1).Feature(0))
	assert.Equal(t, 0.5, scaled.Example(1).Feature(1))
	assert.Equal(t, []float64{1, -1}, scaled.Labels())
	assert.Equal(t, 2, scaled.Example(0).NNZ(), "sparsity is preserved")
	assert.Equal(t, "MaxAbsScaler(0:4 1:10 2:1)", s.String())
}

func TestMaxAbsScaler_InverseAndUnseen(t *testing.T) {
	s := NewMaxAbsScaler()
	require.NoError(t, s.Fit(data.NewDataset([]data.Example{data.MustExample(1, map[int]float64{3: -8})})))

	ex := data.MustExample(1, map[int]float64{3: 4, 7: 3})
	scaled, err := s.TransformExample(ex)
	require.NoError(t, err)
	assert.Equal(t, 0.5, scaled.Feature(3))
	assert.Equal(t, 3.0, scaled.Feature(7), "unseen feature passes through")

	back, err := s.InverseTransformExample(scaled)
	require.NoError(t, err)
	assert.Equal(t, ex.Features(), back.Features())
}

func TestMaxAbsScaler_Errors(t *testing.T) {
	s := NewMaxAbsScaler()
	assert.Equal(t, "MaxAbsScaler()", s.String())

	_, err := s.Transform(data.NewDataset(nil))
	var nfErr *errors.NotFittedError
	assert.True(t, errors.As(err, &nfErr))

	assert.True(t, errors.Is(s.Fit(data.NewDataset(nil)), errors.ErrEmptyData))
}

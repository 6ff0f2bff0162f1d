package model

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

func TestStateManager(t *testing.T) {
	s := NewStateManager()
	assert.False(t, s.IsFitted())

	err := s.RequireFitted("GradientDescentClassifier", "Classify")
	var nfErr *errors.NotFittedError
	require.True(t, errors.As(err, &nfErr))
	assert.Equal(t, "Classify", nfErr.Method)

	s.SetFitted(4, 10, 3)
	assert.True(t, s.IsFitted())
	assert.NoError(t, s.RequireFitted("m", "Classify"))
	f, n := s.GetDimensions()
	assert.Equal(t, 4, f)
	assert.Equal(t, 10, n)
	assert.Equal(t, 3, s.Epochs())

	s.Reset()
	assert.False(t, s.IsFitted())
	assert.Equal(t, 0, s.Epochs())
}

func TestStateManager_Concurrent(t *testing.T) {
	s := NewStateManager()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.SetFitted(i, i, i)
			_ = s.IsFitted()
		}(i)
	}
	wg.Wait()
	assert.True(t, s.IsFitted())
}

func TestWeightVector_Basics(t *testing.T) {
	w := NewWeightVector([]int{9, 2, 2, 5})

	assert.Equal(t, 3, w.Len())
	assert.Equal(t, []int{2, 5, 9}, w.Features())
	for _, f := range w.Features() {
		v, err := w.At(f)
		require.NoError(t, err)
		assert.Zero(t, v)
	}
	assert.Zero(t, w.Bias())

	require.NoError(t, w.Set(5, 1.5))
	require.NoError(t, w.Add(5, 0.5))
	require.NoError(t, w.Add(9, -3))
	w.SetBias(0.25)

	v, err := w.At(5)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
	assert.Equal(t, map[int]float64{2: 0, 5: 2, 9: -3}, w.Map())
	assert.Equal(t, []float64{0, 2, -3}, w.Values())
	assert.InDelta(t, math.Sqrt(13), w.L2Norm(), 1e-12)
	assert.True(t, w.Has(9))
	assert.False(t, w.Has(3))
}

func TestWeightVector_UnknownFeature(t *testing.T) {
	w := NewWeightVector([]int{1})

	var ufErr *errors.UnknownFeatureError
	_, err := w.At(7)
	require.True(t, errors.As(err, &ufErr))
	assert.Equal(t, 7, ufErr.Feature)

	assert.True(t, errors.As(w.Set(7, 1), &ufErr))
	assert.True(t, errors.As(w.Add(7, 1), &ufErr))
}

func TestWeightVector_CloneAndReset(t *testing.T) {
	w := NewWeightVector([]int{0, 1})
	require.NoError(t, w.Set(0, 3))
	w.SetBias(1)

	c := w.Clone()
	w.Reset()

	v, _ := c.At(0)
	assert.Equal(t, 3.0, v)
	assert.Equal(t, 1.0, c.Bias())

	v, _ = w.At(0)
	assert.Zero(t, v)
	assert.Zero(t, w.Bias())
}

func TestWeightVector_EachAndIsFinite(t *testing.T) {
	w := NewWeightVector([]int{0, 1})
	w.Each(func(f int, v float64) float64 { return float64(f) + 1 })
	assert.Equal(t, []float64{1, 2}, w.Values())
	assert.True(t, w.IsFinite())

	w.SetBias(math.Inf(-1))
	assert.False(t, w.IsFinite())
}

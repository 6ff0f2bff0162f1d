package data

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

func TestNewExample(t *testing.T) {
	e, err := NewExample(1, map[int]float64{7: 2.5, 0: 0, 3: -1})
	require.NoError(t, err)

	assert.Equal(t, 1.0, e.Label())
	assert.Equal(t, []int{3, 7}, e.FeatureIndices(), "zeros are dropped and indices sorted")
	assert.Equal(t, 2, e.NNZ())
	assert.Equal(t, 2.5, e.Feature(7))
	assert.Equal(t, 0.0, e.Feature(0))
	assert.Equal(t, 0.0, e.Feature(100))

	idx, v := e.Entry(0)
	assert.Equal(t, 3, idx)
	assert.Equal(t, -1.0, v)
	assert.Equal(t, "1 3:-1 7:2.5", e.String())
}

func TestNewExample_Invalid(t *testing.T) {
	_, err := NewExample(1, map[int]float64{-1: 1})
	var vErr *errors.ValidationError
	assert.True(t, errors.As(err, &vErr))

	_, err = NewExample(1, map[int]float64{0: math.NaN()})
	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr))

	_, err = NewExample(math.Inf(1), nil)
	assert.Error(t, err)

	assert.Panics(t, func() { MustExample(1, map[int]float64{-2: 1}) })
}

func TestExample_WithLabelSharesFeatures(t *testing.T) {
	e := MustExample(1, map[int]float64{1: 2})
	flipped := e.WithLabel(-1)
	assert.Equal(t, -1.0, flipped.Label())
	assert.Equal(t, e.Features(), flipped.Features())
	assert.Equal(t, 1.0, e.Label())
}

func TestNewDataset_FeatureUniverse(t *testing.T) {
	d := NewDataset([]Example{
		MustExample(1, map[int]float64{5: 1}),
		MustExample(-1, map[int]float64{2: 1, 5: 3}),
		MustExample(1, nil),
	})

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []int{2, 5}, d.FeatureIndices())
	assert.Equal(t, 2, d.NumFeatures())
	assert.Equal(t, 3, d.NNZ())
	assert.Equal(t, []float64{1, -1, 1}, d.Labels())
}

func TestNewDatasetWithFeatures(t *testing.T) {
	ex := []Example{MustExample(1, map[int]float64{1: 1})}

	d, err := NewDatasetWithFeatures([]int{3, 1, 0, 1}, ex)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3}, d.FeatureIndices())

	_, err = NewDatasetWithFeatures([]int{0}, ex)
	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr))
}

func makeDataset(n int) *Dataset {
	ex := make([]Example, n)
	for i := range ex {
		label := 1.0
		if i%2 == 1 {
			label = -1
		}
		ex[i] = MustExample(label, map[int]float64{i: float64(i + 1)})
	}
	return NewDataset(ex)
}

func TestDataset_Split(t *testing.T) {
	d := makeDataset(10)

	s, err := d.Split(0.7, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 7, s.Train.Len())
	assert.Equal(t, 3, s.Test.Len())
	assert.Equal(t, d.FeatureIndices(), s.Train.FeatureIndices(), "splits share the parent universe")
	assert.Equal(t, d.FeatureIndices(), s.Test.FeatureIndices())

	_, err = d.Split(1, nil)
	assert.Error(t, err)
	_, err = makeDataset(1).Split(0.5, nil)
	assert.Error(t, err)
}

func TestDataset_CrossValidation(t *testing.T) {
	d := makeDataset(11)

	splits, err := d.CrossValidation(3, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	require.Len(t, splits, 3)

	var seen []string
	for _, s := range splits {
		assert.Equal(t, d.Len(), s.Train.Len()+s.Test.Len())
		assert.InDelta(t, 11.0/3.0, float64(s.Test.Len()), 1)
		assert.Equal(t, d.FeatureIndices(), s.Train.FeatureIndices())
		for _, e := range s.Test.Examples() {
			seen = append(seen, e.String())
		}
	}

	var all []string
	for _, e := range d.Examples() {
		all = append(all, e.String())
	}
	sort.Strings(seen)
	sort.Strings(all)
	assert.Equal(t, all, seen, "every example is tested exactly once")
}

func TestDataset_CrossValidation_Deterministic(t *testing.T) {
	d := makeDataset(9)

	a, err := d.CrossValidation(3, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := d.CrossValidation(3, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	for i := range a {
		assert.Equal(t, a[i].Test.Labels(), b[i].Test.Labels())
	}

	unshuffled, err := d.CrossValidation(3, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, unshuffled[0].Test.Example(0).Feature(0))
}

func TestDataset_CrossValidation_Invalid(t *testing.T) {
	d := makeDataset(3)
	_, err := d.CrossValidation(1, nil)
	assert.Error(t, err)
	_, err = d.CrossValidation(4, nil)
	assert.Error(t, err)
}

func TestDataset_Map(t *testing.T) {
	d := makeDataset(2)
	shifted := d.Map(func(e Example) Example {
		f := e.Features()
		f[10] = 1
		return MustExample(e.Label(), f)
	})
	assert.Equal(t, []int{0, 1, 10}, shifted.FeatureIndices())
}

func TestReadCSV(t *testing.T) {
	in := "survived,age,fare\n1,0.5,0\n-1, 0.2,0.9\n"

	d, err := ReadCSV(strings.NewReader(in), CSVOptions{LabelColumn: 0, Header: true})
	require.NoError(t, err)
	require.Equal(t, 2, d.Len())
	assert.Equal(t, []int{0, 1}, d.FeatureIndices())
	assert.Equal(t, []float64{1, -1}, d.Labels())
	assert.Equal(t, 1, d.Example(0).NNZ())
	assert.Equal(t, 0.9, d.Example(1).Feature(1))
}

func TestReadCSV_LabelLastColumn(t *testing.T) {
	d, err := ReadCSV(strings.NewReader("3;4;1\n"), CSVOptions{LabelColumn: 2, Comma: ';'})
	require.NoError(t, err)
	assert.Equal(t, 1.0, d.Example(0).Label())
	assert.Equal(t, 3.0, d.Example(0).Feature(0))
	assert.Equal(t, 4.0, d.Example(0).Feature(1))
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("1,x\n"), CSVOptions{})
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("1,2\n"), CSVOptions{LabelColumn: 5})
	var vErr *errors.ValidationError
	assert.True(t, errors.As(err, &vErr))

	_, err = ReadCSV(strings.NewReader(""), CSVOptions{})
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestReadSparse(t *testing.T) {
	in := `# comment
+1 3:1 10:0.5
-1 1:2   # trailing

1
`
	d, err := ReadSparse(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 3, d.Len())
	assert.Equal(t, []int{1, 3, 10}, d.FeatureIndices())
	assert.Equal(t, 0.5, d.Example(0).Feature(10))
	assert.Equal(t, -1.0, d.Example(1).Label())
	assert.Equal(t, 0, d.Example(2).NNZ())
}

func TestReadSparse_Errors(t *testing.T) {
	for name, in := range map[string]string{
		"bad label":     "x 1:1\n",
		"missing colon": "1 11\n",
		"bad index":     "1 a:1\n",
		"bad value":     "1 1:z\n",
		"duplicate":     "1 1:1 1:2\n",
		"negative":      "1 -1:1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadSparse(strings.NewReader(in))
			assert.Error(t, err)
		})
	}

	_, err := ReadSparse(strings.NewReader("# only comments\n"))
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("LibSVM")
	require.NoError(t, err)
	assert.Equal(t, FormatSparse, f)

	f, err = ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("arff")
	assert.Error(t, err)

	assert.Equal(t, FormatCSV, FormatFromPath("titanic.CSV"))
	assert.Equal(t, FormatSparse, FormatFromPath("train.svm"))
}

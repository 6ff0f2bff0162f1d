package data

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

// Dataset is an ordered collection of Examples together with its feature
// universe: the sorted set of feature indices a model trained on it knows.
// The universe is a superset of every example's non-zero indices.
type Dataset struct {
	examples []Example
	features []int
}

// NewDataset builds a Dataset whose feature universe is the union of the
// examples' non-zero indices.
func NewDataset(examples []Example) *Dataset {
	seen := make(map[int]struct{})
	for _, e := range examples {
		for _, idx := range e.indices {
			seen[idx] = struct{}{}
		}
	}
	features := make([]int, 0, len(seen))
	for idx := range seen {
		features = append(features, idx)
	}
	sort.Ints(features)

	ex := make([]Example, len(examples))
	copy(ex, examples)
	return &Dataset{examples: ex, features: features}
}

// NewDatasetWithFeatures builds a Dataset with an explicit feature universe.
// Every example feature must belong to it.
func NewDatasetWithFeatures(features []int, examples []Example) (*Dataset, error) {
	universe := make([]int, len(features))
	copy(universe, features)
	sort.Ints(universe)
	universe = dedupe(universe)

	for i, e := range examples {
		for _, idx := range e.indices {
			k := sort.SearchInts(universe, idx)
			if k == len(universe) || universe[k] != idx {
				return nil, errors.NewValueError("NewDatasetWithFeatures",
					fmt.Sprintf("example %d uses feature %d outside the feature universe", i, idx))
			}
		}
	}

	ex := make([]Example, len(examples))
	copy(ex, examples)
	return &Dataset{examples: ex, features: universe}, nil
}

// Len returns the number of examples.
func (d *Dataset) Len() int {
	return len(d.examples)
}

// Example returns the i-th example.
func (d *Dataset) Example(i int) Example {
	return d.examples[i]
}

// Examples returns the examples in order. The returned slice is a copy.
func (d *Dataset) Examples() []Example {
	out := make([]Example, len(d.examples))
	copy(out, d.examples)
	return out
}

// Labels returns the labels in example order.
func (d *Dataset) Labels() []float64 {
	out := make([]float64, len(d.examples))
	for i, e := range d.examples {
		out[i] = e.label
	}
	return out
}

// FeatureIndices returns the feature universe in ascending order.
func (d *Dataset) FeatureIndices() []int {
	out := make([]int, len(d.features))
	copy(out, d.features)
	return out
}

// NumFeatures returns the size of the feature universe.
func (d *Dataset) NumFeatures() int {
	return len(d.features)
}

// NNZ returns the total number of stored non-zero values.
func (d *Dataset) NNZ() int {
	n := 0
	for _, e := range d.examples {
		n += len(e.indices)
	}
	return n
}

// Subset returns the examples at the given positions as a new Dataset that
// shares this dataset's feature universe.
func (d *Dataset) Subset(positions []int) *Dataset {
	ex := make([]Example, len(positions))
	for i, p := range positions {
		ex[i] = d.examples[p]
	}
	return &Dataset{examples: ex, features: d.features}
}

// Map returns a new Dataset with fn applied to every example, keeping the
// feature universe extended by any index fn introduces.
func (d *Dataset) Map(fn func(Example) Example) *Dataset {
	ex := make([]Example, len(d.examples))
	for i, e := range d.examples {
		ex[i] = fn(e)
	}
	mapped := NewDataset(ex)
	mapped.features = dedupe(mergeSorted(d.features, mapped.features))
	return mapped
}

func dedupe(sorted []int) []int {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func mergeSorted(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	sort.Ints(out)
	return out
}

// Split is a train/test partition of a Dataset.
type Split struct {
	Train *Dataset
	Test  *Dataset
}

// Split shuffles the positions with rng (nil keeps input order) and puts the
// first fraction of them in Train and the rest in Test.
func (d *Dataset) Split(fraction float64, rng *rand.Rand) (Split, error) {
	if !(fraction > 0 && fraction < 1) {
		return Split{}, errors.NewValidationError("fraction", "must be in (0, 1)", fraction)
	}
	if len(d.examples) < 2 {
		return Split{}, errors.NewModelError("Split", "insufficient data", errors.ErrEmptyData)
	}

	perm := d.order(rng)
	nTrain := int(fraction * float64(len(perm)))
	if nTrain == 0 {
		nTrain = 1
	}
	if nTrain == len(perm) {
		nTrain--
	}
	return Split{Train: d.Subset(perm[:nTrain]), Test: d.Subset(perm[nTrain:])}, nil
}

// CrossValidation partitions the dataset into k folds and returns k splits,
// the i-th using fold i as its test set and the remaining folds as training
// set. Fold sizes differ by at most one. With a nil rng the folds are
// contiguous in input order.
func (d *Dataset) CrossValidation(k int, rng *rand.Rand) ([]Split, error) {
	n := len(d.examples)
	if k < 2 {
		return nil, errors.NewValidationError("k", "must be at least 2", k)
	}
	if k > n {
		return nil, errors.NewValidationError("k", fmt.Sprintf("cannot exceed number of examples %d", n), k)
	}

	perm := d.order(rng)
	foldSizes := make([]int, k)
	for i := range foldSizes {
		foldSizes[i] = n / k
		if i < n%k {
			foldSizes[i]++
		}
	}

	splits := make([]Split, k)
	start := 0
	for i, size := range foldSizes {
		test := perm[start : start+size]
		train := make([]int, 0, n-size)
		train = append(train, perm[:start]...)
		train = append(train, perm[start+size:]...)
		splits[i] = Split{Train: d.Subset(train), Test: d.Subset(test)}
		start += size
	}
	return splits, nil
}

func (d *Dataset) order(rng *rand.Rand) []int {
	if rng != nil {
		return rng.Perm(len(d.examples))
	}
	perm := make([]int, len(d.examples))
	for i := range perm {
		perm[i] = i
	}
	return perm
}

// Package data provides the sparse Example and Dataset types consumed by the
// classifiers, plus splitting and text readers.
package data

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

// Example is an immutable labelled sparse feature vector. Only non-zero
// feature values are stored, ordered by ascending feature index.
type Example struct {
	label   float64
	indices []int
	values  []float64
}

// NewExample builds an Example from a feature map. Zero values are dropped.
// Feature indices must be non-negative and values finite.
func NewExample(label float64, features map[int]float64) (Example, error) {
	if math.IsNaN(label) || math.IsInf(label, 0) {
		return Example{}, errors.NewValueError("NewExample", fmt.Sprintf("label must be finite, got %v", label))
	}

	indices := make([]int, 0, len(features))
	for idx, v := range features {
		if idx < 0 {
			return Example{}, errors.NewValidationError("feature_index", "must be non-negative", idx)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Example{}, errors.NewValueError("NewExample", fmt.Sprintf("feature %d has non-finite value %v", idx, v))
		}
		if v != 0 {
			indices = append(indices, idx)
		}
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	for k, idx := range indices {
		values[k] = features[idx]
	}
	return Example{label: label, indices: indices, values: values}, nil
}

// MustExample is like NewExample but panics on invalid input. It is intended
// for literals in tests and examples.
func MustExample(label float64, features map[int]float64) Example {
	e, err := NewExample(label, features)
	if err != nil {
		panic(err)
	}
	return e
}

// Label returns the example's label.
func (e Example) Label() float64 {
	return e.label
}

// WithLabel returns a copy of e carrying a different label. The feature
// storage is shared, which is safe because Example is immutable.
func (e Example) WithLabel(label float64) Example {
	return Example{label: label, indices: e.indices, values: e.values}
}

// NNZ returns the number of non-zero features.
func (e Example) NNZ() int {
	return len(e.indices)
}

// Entry returns the k-th non-zero (index, value) pair, 0 <= k < NNZ().
func (e Example) Entry(k int) (int, float64) {
	return e.indices[k], e.values[k]
}

// Feature returns the value of feature idx, or 0 if it is not set.
func (e Example) Feature(idx int) float64 {
	k := sort.SearchInts(e.indices, idx)
	if k < len(e.indices) && e.indices[k] == idx {
		return e.values[k]
	}
	return 0
}

// FeatureIndices returns the non-zero feature indices in ascending order.
func (e Example) FeatureIndices() []int {
	out := make([]int, len(e.indices))
	copy(out, e.indices)
	return out
}

// Features returns the non-zero features as a new map.
func (e Example) Features() map[int]float64 {
	out := make(map[int]float64, len(e.indices))
	for k, idx := range e.indices {
		out[idx] = e.values[k]
	}
	return out
}

// String formats the example as "label idx:val idx:val ...".
func (e Example) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%g", e.label)
	for k, idx := range e.indices {
		fmt.Fprintf(&b, " %d:%g", idx, e.values[k])
	}
	return b.String()
}

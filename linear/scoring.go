package linear

import (
	"github.com/YuminosukeSato/gdlinear/core/model"
	"github.com/YuminosukeSato/gdlinear/data"
)

// LinearScore returns bias + Σ w[i]·x[i] over the example's non-zero
// features. Any weight vector can be passed, not only a classifier's own.
func LinearScore(ex data.Example, w *model.WeightVector) (float64, error) {
	z, err := dot(ex, w)
	if err != nil {
		return 0, err
	}
	return w.Bias() + z, nil
}

// Predict returns the sign of LinearScore: +1, -1, or 0 exactly on the boundary.
func Predict(ex data.Example, w *model.WeightVector) (float64, error) {
	s, err := LinearScore(ex, w)
	if err != nil {
		return 0, err
	}
	return Sign(s), nil
}

// Sign maps a score to +1, -1 or 0.
func Sign(score float64) float64 {
	switch {
	case score > 0:
		return 1
	case score < 0:
		return -1
	default:
		return 0
	}
}

// dot is the sparse dot product without the bias.
func dot(ex data.Example, w *model.WeightVector) (float64, error) {
	var z float64
	for k := 0; k < ex.NNZ(); k++ {
		idx, x := ex.Entry(k)
		wi, err := w.At(idx)
		if err != nil {
			return 0, err
		}
		z += wi * x
	}
	return z, nil
}

package model

import (
	"github.com/YuminosukeSato/gdlinear/data"
)

// Classifier is a binary classifier over sparse examples with labels in {-1, +1}.
type Classifier interface {
	// Train fits the model on ds, replacing any previous state.
	Train(ds *data.Dataset) error

	// Classify returns +1 or -1 for ex, or 0 when the model abstains.
	Classify(ex data.Example) (float64, error)

	// Confidence returns a non-negative score; larger means further from the
	// decision boundary.
	Confidence(ex data.Example) (float64, error)
}

// Factory builds an untrained Classifier. Evaluation harnesses use it to get
// one independent model per fold.
type Factory func() (Classifier, error)

// Named is implemented by models that can describe themselves.
type Named interface {
	Name() string
}

// Scorer is implemented by classifiers that expose a signed decision score.
// Ranking metrics such as AUC use it.
type Scorer interface {
	Score(ex data.Example) (float64, error)
}

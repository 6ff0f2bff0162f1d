// Package evaluation measures classifiers on held-out data: single splits,
// repeated k-fold cross-validation and hyperparameter sweeps.
package evaluation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gdlinear/core/model"
	"github.com/YuminosukeSato/gdlinear/core/parallel"
	"github.com/YuminosukeSato/gdlinear/data"
	"github.com/YuminosukeSato/gdlinear/metrics"
	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

// parallelThreshold is the test-set size below which scoring stays sequential.
const parallelThreshold = 1000

// Report summarizes a classifier on one test set.
type Report struct {
	Samples   int     `json:"samples" yaml:"samples"`
	Accuracy  float64 `json:"accuracy" yaml:"accuracy"`
	AUC       float64 `json:"auc" yaml:"auc"`
	Abstained float64 `json:"abstained" yaml:"abstained"`
}

func (r Report) String() string {
	return fmt.Sprintf("n=%d accuracy=%.4f auc=%.4f abstained=%.4f", r.Samples, r.Accuracy, r.AUC, r.Abstained)
}

// Evaluate classifies every example of ds with a trained classifier.
// AUC uses Score when c implements model.Scorer and Classify·Confidence otherwise.
func Evaluate(c model.Classifier, ds *data.Dataset) (Report, error) {
	if ds == nil || ds.Len() == 0 {
		return Report{}, errors.NewModelError("Evaluate", "empty test set", errors.ErrEmptyData)
	}
	n := ds.Len()
	scorer, hasScore := c.(model.Scorer)

	labels := make([]float64, n)
	preds := make([]float64, n)
	scores := make([]float64, n)
	errs := make([]error, n)

	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			ex := ds.Example(i)
			labels[i] = ex.Label()
			p, err := c.Classify(ex)
			if err != nil {
				errs[i] = err
				continue
			}
			preds[i] = p
			if hasScore {
				scores[i], errs[i] = scorer.Score(ex)
			} else {
				var conf float64
				conf, errs[i] = c.Confidence(ex)
				scores[i] = p * math.Abs(conf)
			}
		}
	})
	for i, err := range errs {
		if err != nil {
			return Report{}, errors.Wrapf(err, "evaluate example %d", i)
		}
	}

	yTrue := mat.NewVecDense(n, labels)
	yPred := mat.NewVecDense(n, preds)

	acc, err := metrics.Accuracy(yTrue, yPred)
	if err != nil {
		return Report{}, err
	}
	auc, err := metrics.AUC(yTrue, mat.NewVecDense(n, scores))
	if err != nil {
		return Report{}, err
	}
	abstained, err := metrics.AbstentionRate(yPred)
	if err != nil {
		return Report{}, err
	}
	return Report{Samples: n, Accuracy: acc, AUC: auc, Abstained: abstained}, nil
}

// TrainAndEvaluate trains c on split.Train and evaluates it on split.Test.
func TrainAndEvaluate(c model.Classifier, split data.Split) (Report, error) {
	if err := c.Train(split.Train); err != nil {
		return Report{}, err
	}
	return Evaluate(c, split.Test)
}

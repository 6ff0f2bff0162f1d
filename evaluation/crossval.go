package evaluation

import (
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/gdlinear/core/model"
	"github.com/YuminosukeSato/gdlinear/core/parallel"
	"github.com/YuminosukeSato/gdlinear/data"
	"github.com/YuminosukeSato/gdlinear/pkg/errors"
	"github.com/YuminosukeSato/gdlinear/pkg/log"
)

// CVOptions controls CrossValidate.
type CVOptions struct {
	// Folds is the number of folds k (>= 2).
	Folds int
	// Repeats is how many times each fold's classifier is retrained and
	// evaluated. Retraining reshuffles, so repeats average out shuffle noise.
	Repeats int
	// Workers bounds the number of folds evaluated concurrently; <= 0 means
	// one per CPU.
	Workers int
	// Seed shuffles examples into folds; -1 keeps input order.
	Seed int64
	// Logger defaults to the "evaluation" logger.
	Logger log.Logger
}

// DefaultCVOptions returns 10 folds, one repeat, shuffled with seed 0.
func DefaultCVOptions() CVOptions {
	return CVOptions{Folds: 10, Repeats: 1}
}

// FoldResult is the evaluation of one fold over all repeats.
type FoldResult struct {
	Fold    int      `json:"fold" yaml:"fold"`
	Reports []Report `json:"reports" yaml:"reports"`
	// MeanAccuracy averages Reports[*].Accuracy.
	MeanAccuracy float64 `json:"mean_accuracy" yaml:"mean_accuracy"`
}

// CVResult aggregates a cross-validation run.
type CVResult struct {
	Folds        []FoldResult `json:"folds" yaml:"folds"`
	MeanAccuracy float64      `json:"mean_accuracy" yaml:"mean_accuracy"`
	StdAccuracy  float64      `json:"std_accuracy" yaml:"std_accuracy"`
	MeanAUC      float64      `json:"mean_auc" yaml:"mean_auc"`
	StdAUC       float64      `json:"std_auc" yaml:"std_auc"`
}

// CrossValidate splits ds into opts.Folds folds and, for every fold, builds a
// fresh classifier with factory, trains it on the other folds and evaluates
// it on the held-out fold, opts.Repeats times. Folds run concurrently; each
// classifier is used by exactly one goroutine.
func CrossValidate(factory model.Factory, ds *data.Dataset, opts CVOptions) (*CVResult, error) {
	if opts.Repeats <= 0 {
		return nil, errors.NewValidationError("repeats", "must be positive", opts.Repeats)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.GetLoggerWithName("evaluation")
	}

	var rng *rand.Rand
	if opts.Seed >= 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	splits, err := ds.CrossValidation(opts.Folds, rng)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	folds := make([]FoldResult, len(splits))
	err = parallel.ForEach(len(splits), opts.Workers, func(i int) error {
		clf, err := factory()
		if err != nil {
			return err
		}
		name := "classifier"
		if n, ok := clf.(model.Named); ok {
			name = n.Name()
		}
		reports := make([]Report, opts.Repeats)
		accs := make([]float64, opts.Repeats)
		for r := 0; r < opts.Repeats; r++ {
			rep, err := TrainAndEvaluate(clf, splits[i])
			if err != nil {
				logger.Error("fold evaluation failed", err, log.FoldKey, i, log.RepeatKey, r)
				return errors.Wrapf(err, "fold %d repeat %d", i, r)
			}
			reports[r] = rep
			accs[r] = rep.Accuracy
		}
		folds[i] = FoldResult{Fold: i, Reports: reports, MeanAccuracy: stat.Mean(accs, nil)}
		logger.Debug("fold evaluated",
			log.OperationKey, log.OperationCrossValidate,
			log.ModelNameKey, name,
			log.FoldKey, i,
			log.AccuracyKey, folds[i].MeanAccuracy,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := summarize(folds)
	logger.Info("cross-validation finished",
		log.OperationKey, log.OperationCrossValidate,
		log.SamplesKey, ds.Len(),
		"eval.folds", len(folds),
		"eval.repeats", opts.Repeats,
		log.AccuracyKey, res.MeanAccuracy,
		log.AUCKey, res.MeanAUC,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return res, nil
}

func summarize(folds []FoldResult) *CVResult {
	var accs, aucs []float64
	for _, f := range folds {
		for _, r := range f.Reports {
			accs = append(accs, r.Accuracy)
			aucs = append(aucs, r.AUC)
		}
	}
	res := &CVResult{Folds: folds}
	res.MeanAccuracy, res.StdAccuracy = meanStd(accs)
	res.MeanAUC, res.StdAUC = meanStd(aucs)
	return res
}

// meanStd is stat.MeanStdDev with a zero deviation for a single sample.
func meanStd(x []float64) (float64, float64) {
	if len(x) == 1 {
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/YuminosukeSato/gdlinear/core/model"
	"github.com/YuminosukeSato/gdlinear/evaluation"
	"github.com/YuminosukeSato/gdlinear/linear"
)

type cvOptions struct {
	data     dataFlags
	model    modelFlags
	log      logFlags
	folds    int
	repeats  int
	workers  int
	foldSeed int64
}

func cvCmd() *commander.Command {
	o := &cvOptions{}
	cmd := &commander.Command{
		Run: func(cmd *commander.Command, args []string) error {
			if err := o.log.setup(); err != nil {
				return err
			}
			return runCV(o, os.Stdout)
		},
		UsageLine: "cv -data <file> [options]",
		Short:     "k-fold cross-validation",
		Long: `
estimate accuracy with k-fold cross-validation; every fold trains its own
classifier, repeated -repeats times

	$ gdclassify cv -data spam.csv -label-col 57 -folds 10 -repeats 3 -loss hinge

`,
		Flag: *flag.NewFlagSet("cv", flag.ExitOnError),
	}
	o.data.register(&cmd.Flag)
	o.model.register(&cmd.Flag)
	o.log.register(&cmd.Flag)
	def := evaluation.DefaultCVOptions()
	cmd.Flag.IntVar(&o.folds, "folds", def.Folds, "number of folds")
	cmd.Flag.IntVar(&o.repeats, "repeats", def.Repeats, "trainings per fold")
	cmd.Flag.IntVar(&o.workers, "workers", 0, "folds evaluated concurrently; 0 means one per CPU")
	cmd.Flag.Int64Var(&o.foldSeed, "fold-seed", def.Seed, "seed of the fold assignment; -1 keeps file order")
	return cmd
}

func runCV(o *cvOptions, w io.Writer) error {
	cfg, err := o.model.config()
	if err != nil {
		return err
	}
	ds, err := o.data.load()
	if err != nil {
		return err
	}

	factory := func() (model.Classifier, error) {
		return linear.NewGradientDescentClassifier(linear.WithConfig(cfg))
	}
	res, err := evaluation.CrossValidate(factory, ds, evaluation.CVOptions{
		Folds:   o.folds,
		Repeats: o.repeats,
		Workers: o.workers,
		Seed:    o.foldSeed,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s loss, %s, eta=%g lambda=%g iterations=%d\n",
		cfg.Loss, cfg.Regularization, cfg.LearningRate, cfg.Lambda, cfg.Iterations)
	for _, f := range res.Folds {
		fmt.Fprintf(w, "fold %2d: accuracy=%.4f\n", f.Fold, f.MeanAccuracy)
	}
	fmt.Fprintf(w, "accuracy: %.4f ± %.4f\n", res.MeanAccuracy, res.StdAccuracy)
	fmt.Fprintf(w, "auc:      %.4f ± %.4f\n", res.MeanAUC, res.StdAUC)
	return nil
}

package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/YuminosukeSato/gdlinear/evaluation"
	"github.com/YuminosukeSato/gdlinear/linear"
	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

type trainOptions struct {
	data      dataFlags
	model     modelFlags
	log       logFlags
	split     float64
	splitSeed int64
	weights   bool
}

func trainCmd() *commander.Command {
	o := &trainOptions{}
	cmd := &commander.Command{
		Run: func(cmd *commander.Command, args []string) error {
			if err := o.log.setup(); err != nil {
				return err
			}
			return runTrain(o, os.Stdout)
		},
		UsageLine: "train -data <file> [options]",
		Short:     "train on a random split and report held-out accuracy",
		Long: `
train on a random split of the data and report accuracy and AUC on the rest

	$ gdclassify train -data spam.csv -label-col 57 -split 0.8 -loss hinge -reg l2 -eta 0.007 -lambda 0.007 -weights

`,
		Flag: *flag.NewFlagSet("train", flag.ExitOnError),
	}
	o.data.register(&cmd.Flag)
	o.model.register(&cmd.Flag)
	o.log.register(&cmd.Flag)
	cmd.Flag.Float64Var(&o.split, "split", 0.8, "fraction of examples used for training")
	cmd.Flag.Int64Var(&o.splitSeed, "split-seed", -1, "seed of the train/test shuffle; -1 keeps file order")
	cmd.Flag.BoolVar(&o.weights, "weights", false, "print the learned bias and weights")
	return cmd
}

func runTrain(o *trainOptions, w io.Writer) error {
	cfg, err := o.model.config()
	if err != nil {
		return err
	}
	ds, err := o.data.load()
	if err != nil {
		return err
	}
	split, err := ds.Split(o.split, seeded(o.splitSeed))
	if err != nil {
		return err
	}

	clf, err := linear.NewGradientDescentClassifier(linear.WithConfig(cfg))
	if err != nil {
		return err
	}
	rep, err := evaluation.TrainAndEvaluate(clf, split)
	if err != nil {
		return errors.Wrap(err, "train")
	}

	fmt.Fprintf(w, "%s loss, %s, eta=%g lambda=%g iterations=%d\n",
		cfg.Loss, cfg.Regularization, cfg.LearningRate, cfg.Lambda, cfg.Iterations)
	fmt.Fprintf(w, "train=%d test=%d features=%d\n", split.Train.Len(), split.Test.Len(), ds.NumFeatures())
	fmt.Fprintf(w, "test: %s\n", rep)
	if o.weights {
		fmt.Fprintf(w, "bias: %g\n", clf.Bias())
		fmt.Fprintf(w, "weights: %s\n", clf)
	}
	return nil
}

// seeded returns a generator for seed, or nil (input order) when seed < 0.
func seeded(seed int64) *rand.Rand {
	if seed < 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}


package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/gdlinear/evaluation"
	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

type sweepOptions struct {
	data    dataFlags
	log     logFlags
	grid    string
	plot    string
	out     string
	workers int
}

func sweepCmd() *commander.Command {
	o := &sweepOptions{}
	cmd := &commander.Command{
		Run: func(cmd *commander.Command, args []string) error {
			if err := o.log.setup(); err != nil {
				return err
			}
			return runSweep(o, os.Stdout)
		},
		UsageLine: "sweep -data <file> [-grid grid.yaml] [options]",
		Short:     "cross-validate a learning rate × lambda grid",
		Long: `
cross-validate every (learning rate, lambda) pair of a YAML grid

	$ cat grid.yaml
	loss: hinge
	regularization: l2
	learning_rates: {start: 0.001, stop: 0.01, step: 0.001}
	lambdas: [0.001, 0.007, 0.01]
	folds: 10
	$ gdclassify sweep -data spam.csv -label-col 57 -grid grid.yaml -plot sweep.png

without -grid, a single hinge/l2 point (eta = lambda = 0.007) is evaluated

`,
		Flag: *flag.NewFlagSet("sweep", flag.ExitOnError),
	}
	o.data.register(&cmd.Flag)
	o.log.register(&cmd.Flag)
	cmd.Flag.StringVar(&o.grid, "grid", "", "YAML grid file")
	cmd.Flag.StringVar(&o.plot, "plot", "", "write accuracy vs learning rate to this image (.png, .svg, .pdf)")
	cmd.Flag.StringVar(&o.out, "out", "", "write all results as YAML to this file")
	cmd.Flag.IntVar(&o.workers, "workers", 0, "folds evaluated concurrently; 0 means one per CPU")
	return cmd
}

func runSweep(o *sweepOptions, w io.Writer) error {
	grid := evaluation.DefaultGrid()
	if o.grid != "" {
		g, err := evaluation.LoadGridFile(o.grid)
		if err != nil {
			return err
		}
		grid = *g
	}
	ds, err := o.data.load()
	if err != nil {
		return err
	}

	points, err := evaluation.Sweep(&grid, ds, evaluation.SweepOptions{Workers: o.workers})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s loss, %s, %d folds × %d repeats\n", grid.Loss, grid.Regularization, grid.Folds, grid.Repeats)
	fmt.Fprintf(w, "%-12s %-12s %-10s %-10s\n", "eta", "lambda", "accuracy", "auc")
	for _, p := range points {
		fmt.Fprintf(w, "%-12g %-12g %-10.4f %-10.4f\n",
			p.Config.LearningRate, p.Config.Lambda, p.Result.MeanAccuracy, p.Result.MeanAUC)
	}
	if best, ok := evaluation.Best(points); ok {
		fmt.Fprintf(w, "best: eta=%g lambda=%g accuracy=%.4f\n",
			best.Config.LearningRate, best.Config.Lambda, best.Result.MeanAccuracy)
	}

	if o.plot != "" {
		if err := evaluation.PlotSweep(points, o.plot); err != nil {
			return err
		}
	}
	if o.out != "" {
		b, err := yaml.Marshal(points)
		if err != nil {
			return errors.Wrap(err, "encode sweep results")
		}
		if err := os.WriteFile(o.out, b, 0o644); err != nil {
			return errors.Wrapf(err, "write %s", o.out)
		}
	}
	return nil
}

// Command gdclassify trains and evaluates sparse linear classifiers fitted
// with stochastic gradient descent.
//
//	$ gdclassify train -data spam.csv -label-col 57 -loss hinge -reg l2
//	$ gdclassify cv -data spam.csv -label-col 57 -folds 10 -repeats 3
//	$ gdclassify sweep -data spam.csv -label-col 57 -grid grid.yaml -plot sweep.png
package main

import (
	"fmt"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

func rootCmd() *commander.Command {
	return &commander.Command{
		UsageLine: "gdclassify <command> [options]",
		Short:     "sparse linear classification with stochastic gradient descent",
		Flag:      *flag.NewFlagSet("gdclassify", flag.ExitOnError),
		Subcommands: []*commander.Command{
			trainCmd(),
			cvCmd(),
			sweepCmd(),
		},
	}
}

func main() {
	if err := rootCmd().Dispatch(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "**err**: %v\n", err)
		os.Exit(1)
	}
}

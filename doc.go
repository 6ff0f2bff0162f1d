// Package gdlinear provides linear binary classifiers over sparse features,
// trained online with stochastic gradient descent.
//
// A classifier minimizes one of three surrogate losses (exponential, hinge
// or squared) with an optional L1 or L2 penalty. Training visits every
// example once per epoch in a freshly shuffled order and updates only the
// weights of the features the example actually carries, so the cost of an
// epoch is proportional to the number of non-zero entries.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/gdlinear/data"
//	    "github.com/YuminosukeSato/gdlinear/linear"
//	)
//
//	func main() {
//	    ds := data.NewDataset([]data.Example{
//	        data.MustExample(1, map[int]float64{0: 1.0, 3: 0.5}),
//	        data.MustExample(-1, map[int]float64{1: 1.0}),
//	    })
//
//	    clf, err := linear.NewGradientDescentClassifier(
//	        linear.WithLoss(linear.HingeLoss),
//	        linear.WithRegularization(linear.L2Regularization),
//	        linear.WithRandomState(42),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := clf.Train(ds); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    label, err := clf.Classify(data.MustExample(0, map[int]float64{0: 2.0}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(label, clf)
//	}
//
// # Packages
//
//   - data: sparse examples, datasets with a fixed feature universe, CSV and
//     sparse text readers, train/test splits and k-fold partitions
//   - linear: GradientDescentClassifier, losses and regularizers
//   - preprocessing: sparsity-preserving MaxAbsScaler
//   - metrics: accuracy, abstention rate and AUC
//   - evaluation: held-out evaluation, parallel cross-validation,
//     learning rate × lambda sweeps and their plots
//   - core/model: classifier interfaces, weight vector and fitted state
//   - core/parallel: bounded worker pools
//   - pkg/errors, pkg/log: structured errors, warnings and logging
//
// The gdclassify command under cmd/ wraps these for files on disk.
package gdlinear

// Package gaussnb provides a Gaussian Naive Bayes classifier for Go,
// together with the small set of tools needed to train and evaluate it.
//
// The classifier models every feature as an independent normal
// distribution per class. Fitting estimates, for each class, the prior
// probability and the per-feature mean and population variance; prediction
// picks the class with the largest joint log-likelihood
//
//	log P(c) + Σ_d log N(x_d; θ_cd, σ²_cd)
//
// Ties go to the class that sorts first.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/gaussnb/sklearn/naive_bayes"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{0.0, 0.2, 10.0, 10.2})
//	    y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})
//
//	    model := naive_bayes.NewGaussianNB()
//	    if err := model.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pred, err := model.Predict(mat.NewDense(2, 1, []float64{0.1, 9.9}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(mat.Col(nil, 0, pred)) // [0 1]
//	}
//
// # Numerical behaviour
//
// Densities are evaluated directly and then logged. A feature with zero
// variance inside a class therefore yields NaN scores, and a density that
// underflows yields -Inf; neither is an error. Fit emits a
// ZeroVarianceWarning through pkg/errors in the first case. Use
// naive_bayes.WithVarSmoothing to add a variance floor, or
// naive_bayes.WithStrict to turn both conditions into errors.
//
// # Packages
//
//   - sklearn/naive_bayes: GaussianNB
//   - preprocessing: BalanceClasses, TrainTestSplit, LabelEncoder, StandardScaler
//   - datasets: MakeClassification, MakeBlobs, CSV reading and writing
//   - metrics: Accuracy, BinaryLogLoss, AUC, ConfusionMatrix
//   - visualize: per-class density plots (gonum/plot)
//   - core/model: interfaces, StateManager, ModelParams and persistence
//   - core/parallel: row fan-out for batch prediction
//   - pkg/errors, pkg/log, pkg/config: error types, zerolog logging, viper configuration
//   - cmd/gaussnb: the demo, train, predict and plot commands
package gaussnb

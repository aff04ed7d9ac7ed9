package naive_bayes_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussnb/sklearn/naive_bayes"
)

func ExampleGaussianNB() {
	X := mat.NewDense(6, 1, []float64{-0.1, 0, 0.1, 9.9, 10, 10.1})
	y := mat.NewDense(6, 1, []float64{0, 0, 0, 1, 1, 1})

	nb := naive_bayes.NewGaussianNB()
	if err := nb.Fit(X, y); err != nil {
		fmt.Println(err)
		return
	}

	pred, _ := nb.Predict(mat.NewDense(2, 1, []float64{0.1, 9.9}))
	fmt.Println(nb.Classes())
	fmt.Println(pred.At(0, 0), pred.At(1, 0))
	// Output:
	// [0 1]
	// 0 1
}

func ExampleGaussianNB_PredictOne() {
	X := mat.NewDense(4, 2, []float64{
		1, 2,
		2, 1,
		8, 9,
		9, 8,
	})
	y := mat.NewDense(4, 1, []float64{3, 3, 7, 7})

	nb := naive_bayes.NewGaussianNB()
	if err := nb.Fit(X, y); err != nil {
		fmt.Println(err)
		return
	}
	label, _ := nb.PredictOne([]float64{8.5, 8.5})
	fmt.Println(label)
	// Output: 7
}

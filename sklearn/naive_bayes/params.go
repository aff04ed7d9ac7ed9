package naive_bayes

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussnb/core/model"
	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

// ExportParams は学習済みパラメータを ModelParams として取り出す
func (nb *GaussianNB) ExportParams() (*model.ModelParams, error) {
	if err := nb.state.RequireFitted(modelName, "ExportParams"); err != nil {
		return nil, err
	}
	_, nSamples := nb.state.GetDimensions()
	strict := 0.0
	if nb.strict {
		strict = 1
	}
	return &model.ModelParams{
		ModelType:  modelName,
		Version:    model.ParamsVersion,
		Classes:    slices.Clone(nb.classes),
		ClassCount: slices.Clone(nb.classCount),
		ClassPrior: slices.Clone(nb.classPrior),
		Theta:      denseRows(nb.theta),
		Var:        denseRows(nb.variance),
		Epsilon:    nb.epsilon,
		NSamples:   nSamples,
		Hyperparameters: map[string]float64{
			"var_smoothing": nb.varSmoothing,
			"strict":        strict,
		},
		IsFitted: true,
	}, nil
}

// ImportParams は ExportParams の出力からモデルを復元する
func (nb *GaussianNB) ImportParams(params *model.ModelParams) error {
	if params == nil {
		return errors.NewValueError("ImportParams", "params must not be nil")
	}
	if params.ModelType != modelName {
		return errors.NewValueError("ImportParams", fmt.Sprintf("expected model type %s, got %q", modelName, params.ModelType))
	}
	if err := params.Validate(); err != nil {
		return errors.NewModelError("ImportParams", "invalid parameters", err)
	}
	if !params.IsFitted {
		return errors.NewNotFittedError(modelName, "ImportParams")
	}

	nClasses, nFeatures := len(params.Classes), params.NFeatures()
	theta := mat.NewDense(nClasses, nFeatures, nil)
	variance := mat.NewDense(nClasses, nFeatures, nil)
	for c := 0; c < nClasses; c++ {
		theta.SetRow(c, params.Theta[c])
		variance.SetRow(c, params.Var[c])
	}

	nb.classes = slices.Clone(params.Classes)
	nb.classCount = slices.Clone(params.ClassCount)
	nb.classPrior = slices.Clone(params.ClassPrior)
	nb.theta = theta
	nb.variance = variance
	nb.epsilon = params.Epsilon
	if v, ok := params.Hyperparameters["var_smoothing"]; ok {
		nb.varSmoothing = v
	}
	if v, ok := params.Hyperparameters["strict"]; ok {
		nb.strict = v != 0
	}
	nb.state.SetDimensions(nFeatures, params.NSamples)
	nb.state.SetFitted()
	return nil
}

func denseRows(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = slices.Clone(m.RawRowView(i))
	}
	return rows
}

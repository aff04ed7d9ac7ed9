package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

func TestAccuracyMatrix(t *testing.T) {
	yTrue := mat.NewDense(4, 1, []float64{0, 1, 1, 0})
	yPred := mat.NewDense(4, 1, []float64{0, 1, 0, 0})

	acc, err := AccuracyMatrix(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, acc, 1e-12)

	_, err = AccuracyMatrix(yTrue, mat.NewDense(3, 1, nil))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	_, err = AccuracyMatrix(yTrue, mat.NewDense(4, 2, nil))
	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr))

	_, err = AccuracyMatrix(nil, yPred)
	assert.Error(t, err)
}

func TestAccuracyBounds(t *testing.T) {
	for n := 1; n <= 8; n++ {
		yTrue := make([]float64, n)
		yPred := make([]float64, n)
		for i := range yTrue {
			yTrue[i] = float64(i % 2)
			yPred[i] = float64((i / 2) % 2)
		}
		acc, err := Accuracy(mat.NewVecDense(n, yTrue), mat.NewVecDense(n, yPred))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, acc, 0.0)
		assert.LessOrEqual(t, acc, 1.0)
	}
}

func TestAccuracyLabels(t *testing.T) {
	acc, err := AccuracyLabels([]string{"M", "B", "B", "M"}, []string{"M", "B", "M", "M"})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, acc, 1e-12)

	_, err = AccuracyLabels([]int{}, []int{})
	assert.Error(t, err)

	_, err = AccuracyLabels([]int{1, 2}, []int{1})
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestConfusionMatrix(t *testing.T) {
	yTrue := mat.NewVecDense(6, []float64{0, 0, 1, 1, 2, 2})
	yPred := mat.NewVecDense(6, []float64{0, 1, 1, 1, 2, 0})

	cm, labels, err := ConfusionMatrix(yTrue, yPred)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, labels)
	want := mat.NewDense(3, 3, []float64{
		1, 1, 0,
		0, 2, 0,
		1, 0, 1,
	})
	assert.True(t, mat.Equal(want, cm), "got\n%v", mat.Formatted(cm))

	// a label only predicted still gets a row and column
	cm, labels, err = ConfusionMatrix(mat.NewVecDense(2, []float64{0, 0}), mat.NewVecDense(2, []float64{0, 3}))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 3}, labels)
	assert.Equal(t, 1.0, cm.At(0, 1))

	_, _, err = ConfusionMatrix(nil, yPred)
	assert.Error(t, err)
}

func TestAUCSingleClassWarns(t *testing.T) {
	var warned []error
	errors.SetZerologWarnFunc(nil)
	errors.SetWarningHandler(func(w error) { warned = append(warned, w) })
	defer errors.SetWarningHandler(func(error) {})

	got, err := AUC(mat.NewVecDense(3, []float64{1, 1, 1}), mat.NewVecDense(3, []float64{0.2, 0.5, 0.9}))
	require.NoError(t, err)
	assert.Equal(t, 0.5, got)
	require.Len(t, warned, 1)

	var undefined *errors.UndefinedMetricWarning
	require.True(t, errors.As(warned[0], &undefined))
	assert.Equal(t, "AUC", undefined.Metric)
}

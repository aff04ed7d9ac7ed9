package visualize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussnb/datasets"
	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/sklearn/naive_bayes"
)

func fittedModel(t *testing.T) (*naive_bayes.GaussianNB, *mat.Dense, *mat.Dense) {
	t.Helper()
	X, y, err := datasets.MakeBlobs([]int{40, 40}, [][]float64{{0, 1}, {4, -1}}, 1, 3)
	require.NoError(t, err)
	nb := naive_bayes.NewGaussianNB()
	require.NoError(t, nb.Fit(X, y))
	return nb, X, y
}

func TestNewDensityPlot(t *testing.T) {
	nb, X, y := fittedModel(t)

	p, err := NewDensityPlot(nb, X, y, 0)
	require.NoError(t, err)
	assert.Less(t, p.X.Min, 0.0)
	assert.Greater(t, p.X.Max, 4.0)
	assert.Less(t, p.Y.Min, 0.0)
}

func TestPlotClassDensitiesWritesFile(t *testing.T) {
	nb, X, y := fittedModel(t)
	for _, name := range []string{"density.png", "density.svg"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, PlotClassDensities(nb, X, y, 1, path))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestNewDensityPlotErrors(t *testing.T) {
	nb, X, y := fittedModel(t)

	_, err := NewDensityPlot(naive_bayes.NewGaussianNB(), X, y, 0)
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))

	_, err = NewDensityPlot(nb, X, y, 2)
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))

	_, err = NewDensityPlot(nb, mat.NewDense(2, 3, nil), y, 0)
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	_, err = NewDensityPlot(nb, X, mat.NewDense(3, 1, nil), 0)
	assert.True(t, errors.As(err, &dimErr))
}

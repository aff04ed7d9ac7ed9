package preprocessing

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/pkg/log"
)

// Split は TrainTestSplit の結果
type Split struct {
	XTrain, XTest *mat.Dense
	YTrain, YTest *mat.Dense
}

// TrainTestSplit shuffles the rows with a seeded permutation and holds out
// ceil(testSize * n) of them for testing. 0 < testSize < 1 and both sides
// must end up non-empty. The same seed always yields the same split.
func TrainTestSplit(X, y mat.Matrix, testSize float64, seed uint64) (*Split, error) {
	if X == nil || y == nil {
		return nil, errors.NewValueError("TrainTestSplit", "X and y must not be nil")
	}
	if !(testSize > 0 && testSize < 1) {
		return nil, errors.NewValidationError("test_size", "must be in (0, 1)", testSize)
	}
	n, nFeatures := X.Dims()
	yRows, yCols := y.Dims()
	if yRows != n {
		return nil, errors.NewDimensionError("TrainTestSplit", n, yRows, 0)
	}

	nTest := int(math.Ceil(testSize * float64(n)))
	nTrain := n - nTest
	if nTest == 0 || nTrain == 0 {
		return nil, errors.NewValueError("TrainTestSplit", "split leaves an empty train or test set")
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	indices := rng.Perm(n)

	s := &Split{
		XTrain: mat.NewDense(nTrain, nFeatures, nil),
		XTest:  mat.NewDense(nTest, nFeatures, nil),
		YTrain: mat.NewDense(nTrain, yCols, nil),
		YTest:  mat.NewDense(nTest, yCols, nil),
	}
	xRow := make([]float64, nFeatures)
	yRow := make([]float64, yCols)
	for i, idx := range indices {
		mat.Row(xRow, idx, X)
		mat.Row(yRow, idx, y)
		if i < nTest {
			s.XTest.SetRow(i, xRow)
			s.YTest.SetRow(i, yRow)
		} else {
			s.XTrain.SetRow(i-nTest, xRow)
			s.YTrain.SetRow(i-nTest, yRow)
		}
	}

	log.GetLoggerWithName("preprocessing").Debug("Data split",
		log.OperationKey, log.OperationSplit,
		log.SamplesKey, n,
		log.TestSizeKey, testSize,
		log.RandomSeedKey, seed,
	)
	return s, nil
}

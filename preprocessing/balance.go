// Package preprocessing provides caller-side data preparation: class
// balancing, train/test splitting, label encoding and standardisation.
package preprocessing

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/pkg/log"
)

// imbalanceTolerance は許容するクラス数の差（少数クラスの件数に対する割合）
const imbalanceTolerance = 0.1

// BalanceReport はバランシングの前後のクラス件数
type BalanceReport struct {
	// Classes は昇順の2クラスのラベル
	Classes [2]float64
	// Before はバランシング前の件数（Classes と同じ順）
	Before [2]int
	// After はバランシング後の件数
	After [2]int
	// Balanced はダウンサンプリングを行ったかどうか
	Balanced bool
}

// BalanceClasses downsamples the majority class of a binary dataset.
//
// If the two class counts differ by more than 10% of the smaller count, the
// result holds every minority row (original order) followed by as many
// majority rows, drawn uniformly without replacement using rng. Otherwise X
// and y are returned unchanged as copies.
func BalanceClasses(X, y mat.Matrix, rng *rand.Rand) (*mat.Dense, *mat.Dense, BalanceReport, error) {
	var report BalanceReport
	if X == nil || y == nil {
		return nil, nil, report, errors.NewInvalidInputError("BalanceClasses", "X and y must not be nil", errors.ErrEmptyData)
	}
	if rng == nil {
		return nil, nil, report, errors.NewValueError("BalanceClasses", "rng must not be nil")
	}
	nSamples, nFeatures := X.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return nil, nil, report, errors.NewInvalidInputError("BalanceClasses", "dataset is empty", errors.ErrEmptyData)
	}
	yRows, yCols := y.Dims()
	if yRows != nSamples || yCols != 1 {
		return nil, nil, report, errors.NewInvalidInputError("BalanceClasses", "y must be a column with one label per row",
			errors.NewDimensionError("BalanceClasses", nSamples, yRows, 0))
	}

	labels := mat.Col(nil, 0, y)
	classes := slices.Clone(labels)
	slices.Sort(classes)
	classes = slices.Compact(classes)
	if len(classes) != 2 || math.IsNaN(classes[0]) || math.IsNaN(classes[1]) {
		return nil, nil, report, errors.NewInvalidInputError("BalanceClasses",
			fmt.Sprintf("exactly 2 classes are required, got %d", len(classes)), nil)
	}

	var rows [2][]int
	for i, label := range labels {
		c := 0
		if label == classes[1] {
			c = 1
		}
		rows[c] = append(rows[c], i)
	}

	report.Classes = [2]float64{classes[0], classes[1]}
	report.Before = [2]int{len(rows[0]), len(rows[1])}

	logger := log.GetLoggerWithName("preprocessing").With(log.OperationKey, log.OperationBalance)
	logger.Info("Class counts",
		log.PhaseKey, log.PhasePreprocessing,
		log.ClassCountsKey, report.Before[:],
	)

	minority, majority := 0, 1
	if len(rows[1]) < len(rows[0]) {
		minority, majority = 1, 0
	}
	nMin, nMaj := len(rows[minority]), len(rows[majority])

	if float64(nMaj-nMin) <= imbalanceTolerance*float64(nMin) {
		report.After = report.Before
		logger.Info("Data are less than 10% imbalanced, balancing not required")
		return mat.DenseCopyOf(X), mat.DenseCopyOf(y), report, nil
	}

	selected := make([]int, 0, 2*nMin)
	selected = append(selected, rows[minority]...)
	for _, k := range rng.Perm(nMaj)[:nMin] {
		selected = append(selected, rows[majority][k])
	}

	outX := mat.NewDense(len(selected), nFeatures, nil)
	outY := mat.NewDense(len(selected), 1, nil)
	row := make([]float64, nFeatures)
	for i, src := range selected {
		mat.Row(row, src, X)
		outX.SetRow(i, row)
		outY.Set(i, 0, labels[src])
	}

	report.After = [2]int{nMin, nMin}
	report.Balanced = true
	logger.Info("Classes balanced successfully", log.ClassCountsKey, report.After[:])
	return outX, outY, report, nil
}

package naive_bayes

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussnb/core/parallel"
	"github.com/YuminosukeSato/gaussnb/metrics"
	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/pkg/log"
)

// gaussianPDF は正規分布の確率密度をそのまま計算する。
// variance が 0 のとき 0/0 となり NaN を返す。
func gaussianPDF(x, mean, variance float64) float64 {
	d := x - mean
	return math.Exp(-(d*d)/(2*variance)) / math.Sqrt(2*math.Pi*variance)
}

// jointLogLikelihoodRow writes log(prior[c]) + Σ_d log(pdf) for every class
// into out. Densities are logged after evaluation, so an underflowed density
// contributes -Inf and a zero variance contributes NaN.
func (nb *GaussianNB) jointLogLikelihoodRow(x, out []float64) {
	for c := range nb.classes {
		mu := nb.theta.RawRowView(c)
		v := nb.variance.RawRowView(c)
		sum := math.Log(nb.classPrior[c])
		for d, xd := range x {
			sum += math.Log(gaussianPDF(xd, mu[d], v[d]))
		}
		out[c] = sum
	}
}

// argmax scans left to right and keeps the first maximum. A NaN score is
// treated as the maximum, so the first NaN wins; all -Inf selects index 0.
func argmax(scores []float64) int {
	best := 0
	for i, s := range scores {
		if math.IsNaN(s) {
			return i
		}
		if s > scores[best] {
			best = i
		}
	}
	return best
}

// checkPredictInput は予測入力の構造を検証する（行ごとの計算の前に行う）
func (nb *GaussianNB) checkPredictInput(X mat.Matrix, method string) (int, error) {
	if err := nb.state.RequireFitted(modelName, method); err != nil {
		return 0, err
	}
	if X == nil {
		return 0, errors.NewInvalidInputError(method, "X must not be nil", errors.ErrEmptyData)
	}
	nRows, nCols := X.Dims()
	if nRows == 0 {
		return 0, errors.NewInvalidInputError(method, "X has no rows", errors.ErrEmptyData)
	}
	if nFeatures := nb.NFeatures(); nCols != nFeatures {
		return 0, errors.NewInvalidInputError(method, "feature count differs from training",
			errors.NewDimensionError(method, nFeatures, nCols, 1))
	}
	if nb.strict {
		if err := errors.CheckMatrix("predict_input", X, nRows, nCols); err != nil {
			return 0, err
		}
	}
	return nRows, nil
}

// forEachRow runs fn over row ranges, fanning out across nJobs workers when
// enabled and the batch is large enough. Ranges are disjoint.
func (nb *GaussianNB) forEachRow(nRows int, fn func(start, end int)) {
	if nb.nJobs == 1 || nRows <= parallel.DefaultThreshold {
		fn(0, nRows)
		return
	}
	workers := parallel.Workers(nb.nJobs)
	nb.logger.Debug("Parallel prediction",
		log.PredsKey, nRows,
		log.WorkersKey, workers,
	)
	parallel.ParallelizeN(nRows, workers, fn)
}

// JointLogLikelihood returns the n_samples × n_classes matrix of unnormalised
// log posteriors log P(c) + Σ log P(x_d | c).
func (nb *GaussianNB) JointLogLikelihood(X mat.Matrix) (_ *mat.Dense, err error) {
	defer errors.Recover(&err, "GaussianNB.JointLogLikelihood")
	nRows, err := nb.checkPredictInput(X, "JointLogLikelihood")
	if err != nil {
		return nil, err
	}
	return nb.jointLogLikelihood(X, nRows), nil
}

func (nb *GaussianNB) jointLogLikelihood(X mat.Matrix, nRows int) *mat.Dense {
	nClasses := len(nb.classes)
	nFeatures := nb.NFeatures()
	jll := mat.NewDense(nRows, nClasses, nil)
	nb.forEachRow(nRows, func(start, end int) {
		x := make([]float64, nFeatures)
		for i := start; i < end; i++ {
			mat.Row(x, i, X)
			nb.jointLogLikelihoodRow(x, jll.RawRowView(i))
		}
	})
	return jll
}

// Predict は各行の予測クラスを n_samples × 1 の行列で返す
//
// 行の順序は入力と同じで、各値は Classes() のいずれか。
func (nb *GaussianNB) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "GaussianNB.Predict")
	nRows, err := nb.checkPredictInput(X, "Predict")
	if err != nil {
		return nil, err
	}

	jll := nb.jointLogLikelihood(X, nRows)
	pred := mat.NewDense(nRows, 1, nil)
	for i := 0; i < nRows; i++ {
		pred.Set(i, 0, nb.classes[argmax(jll.RawRowView(i))])
	}

	nb.logger.Debug("Prediction completed",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.PredsKey, nRows,
	)
	return pred, nil
}

// PredictOne は1行分の特徴量に対する予測クラスを返す
func (nb *GaussianNB) PredictOne(x []float64) (_ float64, err error) {
	defer errors.Recover(&err, "GaussianNB.PredictOne")
	if err := nb.state.RequireFitted(modelName, "PredictOne"); err != nil {
		return 0, err
	}
	if nFeatures := nb.NFeatures(); len(x) != nFeatures {
		return 0, errors.NewInvalidInputError("PredictOne", "feature count differs from training",
			errors.NewDimensionError("PredictOne", nFeatures, len(x), 1))
	}
	if nb.strict {
		if err := errors.CheckNumericalStability("predict_input", x, 0); err != nil {
			return 0, err
		}
	}

	scores := make([]float64, len(nb.classes))
	nb.jointLogLikelihoodRow(x, scores)
	return nb.classes[argmax(scores)], nil
}

// PredictLogProba は各クラスの対数事後確率を返す（行ごとに logsumexp で正規化）
func (nb *GaussianNB) PredictLogProba(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "GaussianNB.PredictLogProba")
	nRows, err := nb.checkPredictInput(X, "PredictLogProba")
	if err != nil {
		return nil, err
	}

	jll := nb.jointLogLikelihood(X, nRows)
	for i := 0; i < nRows; i++ {
		row := jll.RawRowView(i)
		norm := errors.LogSumExp(row)
		for c := range row {
			row[c] -= norm
		}
	}
	return jll, nil
}

// PredictProba は各クラスの事後確率を返す。有限な行の合計は1になる。
func (nb *GaussianNB) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	logProba, err := nb.PredictLogProba(X)
	if err != nil {
		return nil, err
	}
	proba := logProba.(*mat.Dense)
	proba.Apply(func(_, _ int, v float64) float64 {
		return math.Exp(v)
	}, proba)

	nRows, _ := proba.Dims()
	nb.logger.Debug("Probabilities computed",
		log.OperationKey, log.OperationPredictProba,
		log.PredsKey, nRows,
	)
	return proba, nil
}

// Score は X に対する予測の正解率を返す
func (nb *GaussianNB) Score(X, y mat.Matrix) (float64, error) {
	pred, err := nb.Predict(X)
	if err != nil {
		return 0, err
	}
	acc, err := metrics.AccuracyMatrix(y, pred)
	if err != nil {
		return 0, err
	}
	nb.logger.Info("Model scored",
		log.OperationKey, log.OperationScore,
		log.AccuracyKey, acc,
	)
	return acc, nil
}

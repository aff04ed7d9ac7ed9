// Package metrics provides evaluation metrics for classifiers.
package metrics

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

// logLossEps は log(0) を避けるためのクリップ幅
const logLossEps = 1e-15

// checkPair は2つのベクトルが空でなく同じ長さであることを検証する
func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError(op, "empty vector")
	}
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// firstColumns は行列の先頭列をベクトルとして取り出す
func firstColumns(op string, yTrue, yPred mat.Matrix) (*mat.VecDense, *mat.VecDense, error) {
	if yTrue == nil || yPred == nil {
		return nil, nil, errors.NewValueError(op, "nil matrix")
	}
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()
	if rTrue == 0 || cTrue == 0 || rPred == 0 || cPred == 0 {
		return nil, nil, errors.NewValueError(op, "empty matrix")
	}
	if rTrue != rPred {
		return nil, nil, errors.NewDimensionError(op, rTrue, rPred, 0)
	}
	return mat.NewVecDense(rTrue, mat.Col(nil, 0, yTrue)), mat.NewVecDense(rPred, mat.Col(nil, 0, yPred)), nil
}

// Accuracy は正解率（一致した件数 / 全件数）を計算する
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// AccuracyMatrix は n×1 の行列（Predict の出力など）に対して正解率を計算する
func AccuracyMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError("AccuracyMatrix", "nil matrix")
	}
	_, cTrue := yTrue.Dims()
	_, cPred := yPred.Dims()
	if cTrue != 1 || cPred != 1 {
		return 0, errors.NewValueError("AccuracyMatrix", "must be a column vector (n×1 matrix)")
	}
	t, p, err := firstColumns("AccuracyMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return Accuracy(t, p)
}

// AccuracyLabels computes accuracy over arbitrary comparable labels.
func AccuracyLabels[L comparable](yTrue, yPred []L) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("AccuracyLabels", "empty labels")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("AccuracyLabels", n, len(yPred), 0)
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ClassificationError は誤分類率（1 - 正解率）を計算する
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// checkBinary はラベルが 0 か 1 であることを検証する
func checkBinary(op string, y *mat.VecDense) (nPos int, err error) {
	for i := 0; i < y.Len(); i++ {
		switch y.AtVec(i) {
		case 1:
			nPos++
		case 0:
		default:
			return 0, errors.NewValueError(op, "labels must be 0 or 1")
		}
	}
	return nPos, nil
}

// BinaryLogLoss は2値分類の対数損失を計算する
// yPred は陽性クラスの確率で、[eps, 1-eps] にクリップされる
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("BinaryLogLoss", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if _, err := checkBinary("BinaryLogLoss", yTrue); err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		p := errors.ClipValue(yPred.AtVec(i), logLossEps, 1-logLossEps)
		if yTrue.AtVec(i) == 1 {
			sum -= math.Log(p)
		} else {
			sum -= math.Log(1 - p)
		}
	}
	return sum / float64(n), nil
}

// AUC は ROC 曲線下面積を Mann-Whitney の順位統計で計算する。
// 同点は 0.5 として数える。ラベルが1クラスしかない場合は
// UndefinedMetricWarning を出して 0.5 を返す。
func AUC(yTrue, yScore *mat.VecDense) (float64, error) {
	n, err := checkPair("AUC", yTrue, yScore)
	if err != nil {
		return 0, err
	}
	nPos, err := checkBinary("AUC", yTrue)
	if err != nil {
		return 0, err
	}
	nNeg := n - nPos
	if nPos == 0 || nNeg == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("AUC", "only one class present in y_true", 0.5))
		return 0.5, nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		sa, sb := yScore.AtVec(a), yScore.AtVec(b)
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
		return 0
	})

	// 同点には平均順位を与える
	var rankSumPos float64
	for i := 0; i < n; {
		j := i
		for j+1 < n && yScore.AtVec(order[j+1]) == yScore.AtVec(order[i]) {
			j++
		}
		avgRank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			if yTrue.AtVec(order[k]) == 1 {
				rankSumPos += avgRank
			}
		}
		i = j + 1
	}

	p, q := float64(nPos), float64(nNeg)
	return (rankSumPos - p*(p+1)/2) / (p * q), nil
}

// AUCMatrix は行列形式の入力に対して AUC を計算する（先頭列を使う）
func AUCMatrix(yTrue, yScore mat.Matrix) (float64, error) {
	t, s, err := firstColumns("AUCMatrix", yTrue, yScore)
	if err != nil {
		return 0, err
	}
	return AUC(t, s)
}

// ConfusionMatrix returns the confusion matrix of yTrue against yPred.
// Rows are true labels and columns predicted labels, both in the ascending
// order of the returned label slice (the union of labels seen in either).
func ConfusionMatrix(yTrue, yPred *mat.VecDense) (*mat.Dense, []float64, error) {
	n, err := checkPair("ConfusionMatrix", yTrue, yPred)
	if err != nil {
		return nil, nil, err
	}

	labels := make([]float64, 0, 2*n)
	for i := 0; i < n; i++ {
		labels = append(labels, yTrue.AtVec(i), yPred.AtVec(i))
	}
	for _, l := range labels {
		if math.IsNaN(l) {
			return nil, nil, errors.NewValueError("ConfusionMatrix", "labels must not be NaN")
		}
	}
	slices.Sort(labels)
	labels = slices.Compact(labels)

	index := make(map[float64]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	cm := mat.NewDense(len(labels), len(labels), nil)
	for i := 0; i < n; i++ {
		r, c := index[yTrue.AtVec(i)], index[yPred.AtVec(i)]
		cm.Set(r, c, cm.At(r, c)+1)
	}
	return cm, labels, nil
}

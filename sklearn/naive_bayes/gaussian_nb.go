// Package naive_bayes implements the Gaussian Naive Bayes classifier.
//
// GaussianNB estimates, for every class, the mean and population variance of
// each feature together with the class prior, and predicts the class whose
// log prior plus summed log Gaussian densities is largest.
//
//	nb := naive_bayes.NewGaussianNB()
//	if err := nb.Fit(XTrain, yTrain); err != nil {
//	    return err
//	}
//	pred, err := nb.Predict(XTest)
package naive_bayes

import (
	"fmt"
	"math"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/gaussnb/core/model"
	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/pkg/log"
)

const modelName = "GaussianNB"

// priorSumTolerance は事前確率の合計が1から外れてよい幅
const priorSumTolerance = 1e-9

// GaussianNB はガウス分布を仮定したナイーブベイズ分類器
// scikit-learn の GaussianNB と同じ属性を持つ
type GaussianNB struct {
	state *model.StateManager // State management (composition)

	// Hyperparameters
	priors       []float64 // 固定の事前確率（nil なら頻度から推定）
	declared     []float64 // WithClasses で宣言されたラベル集合
	varSmoothing float64   // 分散に加える平滑化の係数（既定 0）
	strict       bool      // 非有限値・ゼロ分散をエラーにする
	nJobs        int       // 予測の並列数（1 は逐次, -1 は全コア）

	// Learned parameters
	classes    []float64  // 昇順のクラスラベル
	classCount []float64  // クラスごとの学習行数
	classPrior []float64  // クラスごとの事前確率
	theta      *mat.Dense // n_classes × n_features の平均
	variance   *mat.Dense // n_classes × n_features の母分散（+epsilon）
	epsilon    float64    // 実際に加えた平滑化量

	logger log.Logger
}

// Option は GaussianNB の関数オプション
type Option func(*GaussianNB)

// NewGaussianNB は新しい GaussianNB を作成する
func NewGaussianNB(opts ...Option) *GaussianNB {
	nb := &GaussianNB{
		state: model.NewStateManager(),
		nJobs: 1,
	}
	for _, opt := range opts {
		opt(nb)
	}
	nb.logger = log.GetLoggerWithName("naive_bayes.gaussian").With(log.ModelNameKey, modelName)
	return nb
}

// WithPriors は頻度の代わりに固定の事前確率を使う。
// 長さはクラス数と一致し、非負で合計が1でなければならない（Fit 時に検証）。
func WithPriors(priors []float64) Option {
	return func(nb *GaussianNB) {
		nb.priors = slices.Clone(priors)
	}
}

// WithClasses declares the full label set. Every declared class must have
// at least one training row, and every training label must be declared.
func WithClasses(classes []float64) Option {
	return func(nb *GaussianNB) {
		nb.declared = slices.Clone(classes)
	}
}

// WithVarSmoothing adds s times the largest feature variance of X to every
// per-class variance. The default 0 keeps the plain population variance.
func WithVarSmoothing(s float64) Option {
	return func(nb *GaussianNB) {
		nb.varSmoothing = s
	}
}

// WithStrict makes Fit reject non-finite features and zero variances, and
// Predict reject non-finite query features, with NumericalInstabilityError.
func WithStrict(strict bool) Option {
	return func(nb *GaussianNB) {
		nb.strict = strict
	}
}

// WithNJobs sets how many goroutines batch prediction may use.
// -1 means all CPUs. Fit is always sequential.
func WithNJobs(n int) Option {
	return func(nb *GaussianNB) {
		nb.nJobs = n
	}
}

// Fit は学習データからクラスごとの平均・分散・事前確率を推定する
//
// X は n_samples × n_features、y は n_samples × 1 のラベル列。
// 既存の学習結果は置き換えられる。
func (nb *GaussianNB) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "GaussianNB.Fit")
	start := time.Now()

	nSamples, nFeatures, labels, err := nb.validateFitInput(X, y)
	if err != nil {
		return err
	}

	classes, err := nb.resolveClasses(labels)
	if err != nil {
		return err
	}
	nClasses := len(classes)

	groups, err := groupRows(labels, classes)
	if err != nil {
		return err
	}

	if nb.strict {
		if err := errors.CheckMatrix("fit_input", X, nSamples, nFeatures); err != nil {
			return err
		}
	}

	epsilon, err := nb.computeEpsilon(X, nSamples, nFeatures)
	if err != nil {
		return err
	}

	theta := mat.NewDense(nClasses, nFeatures, nil)
	variance := mat.NewDense(nClasses, nFeatures, nil)
	classCount := make([]float64, nClasses)
	column := make([]float64, nSamples)

	for c, rows := range groups {
		classCount[c] = float64(len(rows))
		vals := column[:len(rows)]
		for j := 0; j < nFeatures; j++ {
			for k, i := range rows {
				vals[k] = X.At(i, j)
			}
			mean, v := stat.PopMeanVariance(vals, nil)
			if v < 0 {
				// 補正二段階法の丸め誤差
				v = 0
			}
			theta.Set(c, j, mean)
			variance.Set(c, j, v+epsilon)
		}
	}

	if err := nb.checkZeroVariance(classes, variance); err != nil {
		return err
	}

	classPrior, err := nb.resolvePriors(classCount, nSamples)
	if err != nil {
		return err
	}

	nb.classes = classes
	nb.classCount = classCount
	nb.classPrior = classPrior
	nb.theta = theta
	nb.variance = variance
	nb.epsilon = epsilon
	nb.state.SetDimensions(nFeatures, nSamples)
	nb.state.SetFitted()

	nb.logger.Info("Model fitted",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		log.ClassesKey, nClasses,
		log.ClassCountsKey, classCount,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// validateFitInput checks shapes and labels before any arithmetic and
// returns the labels as a slice.
func (nb *GaussianNB) validateFitInput(X, y mat.Matrix) (int, int, []float64, error) {
	if X == nil || y == nil {
		return 0, 0, nil, errors.NewInvalidInputError("Fit", "X and y must not be nil", errors.ErrEmptyData)
	}
	nSamples, nFeatures := X.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return 0, 0, nil, errors.NewInvalidInputError("Fit", "training set is empty", errors.ErrEmptyData)
	}

	yRows, yCols := y.Dims()
	if yRows != nSamples {
		return 0, 0, nil, errors.NewInvalidInputError("Fit", "y must have one label per row of X",
			errors.NewDimensionError("Fit", nSamples, yRows, 0))
	}
	if yCols != 1 {
		return 0, 0, nil, errors.NewInvalidInputError("Fit", "y must be a column vector",
			errors.NewDimensionError("Fit", 1, yCols, 1))
	}

	labels := make([]float64, nSamples)
	for i := range labels {
		labels[i] = y.At(i, 0)
		if math.IsNaN(labels[i]) {
			return 0, 0, nil, errors.NewInvalidInputError("Fit", fmt.Sprintf("label at row %d is NaN", i), nil)
		}
	}
	return nSamples, nFeatures, labels, nil
}

// resolveClasses returns the sorted distinct labels, or the declared set
// when WithClasses was given.
func (nb *GaussianNB) resolveClasses(labels []float64) ([]float64, error) {
	var classes []float64
	if nb.declared != nil {
		classes = slices.Clone(nb.declared)
		for _, c := range classes {
			if math.IsNaN(c) {
				return nil, errors.NewInvalidInputError("Fit", "declared classes must not contain NaN", nil)
			}
		}
	} else {
		classes = slices.Clone(labels)
	}
	slices.Sort(classes)
	classes = slices.Compact(classes)

	if len(classes) < 2 {
		return nil, errors.NewInvalidInputError("Fit",
			fmt.Sprintf("at least 2 classes are required, got %d", len(classes)), nil)
	}
	return classes, nil
}

// groupRows partitions row indices by class index in a single pass,
// preserving row order within each class.
func groupRows(labels, classes []float64) ([][]int, error) {
	index := make(map[float64]int, len(classes))
	for c, label := range classes {
		index[label] = c
	}
	groups := make([][]int, len(classes))
	for i, label := range labels {
		c, ok := index[label]
		if !ok {
			return nil, errors.NewInvalidInputError("Fit",
				fmt.Sprintf("label %g at row %d is not one of the declared classes", label, i), nil)
		}
		groups[c] = append(groups[c], i)
	}
	for c, rows := range groups {
		if len(rows) == 0 {
			return nil, errors.NewInvalidInputError("Fit",
				fmt.Sprintf("class %g has no training rows", classes[c]), errors.ErrEmptyClass)
		}
	}
	return groups, nil
}

// computeEpsilon returns varSmoothing times the largest column variance of X.
func (nb *GaussianNB) computeEpsilon(X mat.Matrix, nSamples, nFeatures int) (float64, error) {
	if nb.varSmoothing == 0 {
		return 0, nil
	}
	if nb.varSmoothing < 0 || !errors.IsFinite(nb.varSmoothing) {
		return 0, errors.NewValidationError("var_smoothing", "must be a finite non-negative number", nb.varSmoothing)
	}
	colVars := make([]float64, nFeatures)
	col := make([]float64, nSamples)
	for j := 0; j < nFeatures; j++ {
		mat.Col(col, j, X)
		_, colVars[j] = stat.PopMeanVariance(col, nil)
	}
	return nb.varSmoothing * floats.Max(colVars), nil
}

// checkZeroVariance reports every zero variance. In strict mode the first one
// is an error; otherwise each is raised as a ZeroVarianceWarning and the
// literal density (which evaluates to NaN) is kept.
func (nb *GaussianNB) checkZeroVariance(classes []float64, variance *mat.Dense) error {
	nClasses, nFeatures := variance.Dims()
	for c := 0; c < nClasses; c++ {
		row := variance.RawRowView(c)
		for j := 0; j < nFeatures; j++ {
			if row[j] != 0 {
				continue
			}
			if nb.strict {
				return errors.NewNumericalInstabilityError("variance", slices.Clone(row), c)
			}
			errors.Warn(errors.NewZeroVarianceWarning(classes[c], j))
		}
	}
	return nil
}

// resolvePriors は事前確率を決める（固定値または頻度 n_c / N）
func (nb *GaussianNB) resolvePriors(classCount []float64, nSamples int) ([]float64, error) {
	nClasses := len(classCount)
	if nb.priors == nil {
		prior := make([]float64, nClasses)
		for c, n := range classCount {
			prior[c] = n / float64(nSamples)
		}
		return prior, nil
	}

	if len(nb.priors) != nClasses {
		return nil, errors.NewInvalidInputError("Fit", "priors must have one entry per class",
			errors.NewDimensionError("Fit", nClasses, len(nb.priors), 1))
	}
	for _, p := range nb.priors {
		if p < 0 || math.IsNaN(p) {
			return nil, errors.NewInvalidInputError("Fit", "priors must be non-negative",
				errors.NewValidationError("priors", "negative or NaN entry", p))
		}
	}
	if sum := floats.Sum(nb.priors); math.Abs(sum-1) > priorSumTolerance {
		return nil, errors.NewInvalidInputError("Fit", "priors must sum to 1",
			errors.NewValidationError("priors", "sum is not 1", sum))
	}
	return slices.Clone(nb.priors), nil
}

// Classes は昇順のクラスラベルを返す
func (nb *GaussianNB) Classes() []float64 {
	return slices.Clone(nb.classes)
}

// NClasses はクラス数を返す
func (nb *GaussianNB) NClasses() int {
	return len(nb.classes)
}

// ClassPrior は各クラスの事前確率を返す
func (nb *GaussianNB) ClassPrior() []float64 {
	return slices.Clone(nb.classPrior)
}

// ClassCount は各クラスの学習行数を返す
func (nb *GaussianNB) ClassCount() []float64 {
	return slices.Clone(nb.classCount)
}

// Theta returns a copy of the n_classes × n_features mean table, or nil
// before Fit.
func (nb *GaussianNB) Theta() *mat.Dense {
	if nb.theta == nil {
		return nil
	}
	return mat.DenseCopyOf(nb.theta)
}

// Var returns a copy of the n_classes × n_features variance table
// (epsilon included), or nil before Fit.
func (nb *GaussianNB) Var() *mat.Dense {
	if nb.variance == nil {
		return nil
	}
	return mat.DenseCopyOf(nb.variance)
}

// Epsilon は分散に加えた平滑化量を返す
func (nb *GaussianNB) Epsilon() float64 {
	return nb.epsilon
}

// NFeatures は学習時の特徴量数を返す
func (nb *GaussianNB) NFeatures() int {
	nFeatures, _ := nb.state.GetDimensions()
	return nFeatures
}

// IsFitted はモデルが学習済みかどうかを返す
func (nb *GaussianNB) IsFitted() bool {
	return nb.state.IsFitted()
}

// GetParams はハイパーパラメータを返す
func (nb *GaussianNB) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"priors":        slices.Clone(nb.priors),
		"classes":       slices.Clone(nb.declared),
		"var_smoothing": nb.varSmoothing,
		"strict":        nb.strict,
		"n_jobs":        nb.nJobs,
	}
}

// SetParams はハイパーパラメータを設定する。学習済みの値は変更しない。
func (nb *GaussianNB) SetParams(params map[string]interface{}) error {
	for key, value := range params {
		switch key {
		case "priors", "classes":
			v, ok := value.([]float64)
			if !ok && value != nil {
				return errors.NewValidationError(key, "must be []float64", value)
			}
			if key == "priors" {
				nb.priors = slices.Clone(v)
			} else {
				nb.declared = slices.Clone(v)
			}
		case "var_smoothing":
			v, ok := value.(float64)
			if !ok {
				return errors.NewValidationError(key, "must be float64", value)
			}
			if v < 0 || !errors.IsFinite(v) {
				return errors.NewValidationError(key, "must be a finite non-negative number", v)
			}
			nb.varSmoothing = v
		case "strict":
			v, ok := value.(bool)
			if !ok {
				return errors.NewValidationError(key, "must be bool", value)
			}
			nb.strict = v
		case "n_jobs":
			v, ok := value.(int)
			if !ok {
				return errors.NewValidationError(key, "must be int", value)
			}
			nb.nJobs = v
		default:
			return errors.NewValidationError(key, "unknown parameter", value)
		}
	}
	return nil
}

// String はモデルの概要を返す
func (nb *GaussianNB) String() string {
	if !nb.state.IsFitted() {
		return fmt.Sprintf("GaussianNB(var_smoothing=%g, strict=%t)", nb.varSmoothing, nb.strict)
	}
	return fmt.Sprintf("GaussianNB(classes=%v, n_features=%d, var_smoothing=%g, strict=%t)",
		nb.classes, nb.NFeatures(), nb.varSmoothing, nb.strict)
}

// Package datasets generates synthetic classification data and reads and
// writes numeric CSV files.
package datasets

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

// ClassificationConfig は MakeClassification の設定
type ClassificationConfig struct {
	NSamples     int     // 行数
	NFeatures    int     // 特徴量の総数
	NInformative int     // クラス中心がずれる特徴量の数（残りはノイズ）
	NClasses     int     // クラス数（2^NInformative 以下）
	ClassSep     float64 // 超立方体の頂点までの距離
	FlipY        float64 // ランダムに付け替えるラベルの割合
	Shuffle      bool    // 行をシャッフルするか
	Seed         uint64  // 乱数シード
}

// DefaultClassificationConfig returns 1000 samples, 10 features (2
// informative), 2 classes and seed 123.
func DefaultClassificationConfig() ClassificationConfig {
	return ClassificationConfig{
		NSamples:     1000,
		NFeatures:    10,
		NInformative: 2,
		NClasses:     2,
		ClassSep:     1.0,
		FlipY:        0.01,
		Shuffle:      true,
		Seed:         123,
	}
}

func (c ClassificationConfig) validate() error {
	switch {
	case c.NSamples < c.NClasses:
		return errors.NewValidationError("n_samples", "must be at least n_classes", c.NSamples)
	case c.NFeatures < 1:
		return errors.NewValidationError("n_features", "must be positive", c.NFeatures)
	case c.NInformative < 1 || c.NInformative > c.NFeatures:
		return errors.NewValidationError("n_informative", "must be in [1, n_features]", c.NInformative)
	case c.NClasses < 2:
		return errors.NewValidationError("n_classes", "must be at least 2", c.NClasses)
	case c.NInformative < 31 && c.NClasses > 1<<c.NInformative:
		return errors.NewValidationError("n_classes", fmt.Sprintf("must be at most 2^n_informative = %d", 1<<c.NInformative), c.NClasses)
	case c.FlipY < 0 || c.FlipY > 1:
		return errors.NewValidationError("flip_y", "must be in [0, 1]", c.FlipY)
	}
	return nil
}

// MakeClassification generates a labelled dataset in the manner of
// scikit-learn's make_classification. Class k is centred on a vertex of a
// hypercube with side 2*ClassSep in the informative features, the informative
// features are unit-variance Gaussian around it, and the remaining features
// are standard normal noise. Class sizes differ by at most one.
func MakeClassification(cfg ClassificationConfig) (*mat.Dense, *mat.Dense, error) {
	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}

	src := rand.NewPCG(cfg.Seed, cfg.Seed)
	rng := rand.New(src)
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	X := mat.NewDense(cfg.NSamples, cfg.NFeatures, nil)
	y := mat.NewDense(cfg.NSamples, 1, nil)

	row := 0
	for k := 0; k < cfg.NClasses; k++ {
		n := cfg.NSamples / cfg.NClasses
		if k < cfg.NSamples%cfg.NClasses {
			n++
		}
		centroid := vertex(k, cfg.NInformative, cfg.ClassSep)
		for i := 0; i < n; i++ {
			for j := 0; j < cfg.NFeatures; j++ {
				v := normal.Rand()
				if j < cfg.NInformative {
					v += centroid[j]
				}
				X.Set(row, j, v)
			}
			y.Set(row, 0, float64(k))
			row++
		}
	}

	if cfg.FlipY > 0 {
		for i := 0; i < cfg.NSamples; i++ {
			if rng.Float64() < cfg.FlipY {
				y.Set(i, 0, float64(rng.IntN(cfg.NClasses)))
			}
		}
	}

	if cfg.Shuffle {
		X, y = shuffleRows(rng, X, y)
	}
	return X, y, nil
}

// vertex は k の2進表現から超立方体の頂点座標を作る
func vertex(k, dims int, sep float64) []float64 {
	v := make([]float64, dims)
	for j := range v {
		if k&(1<<j) != 0 {
			v[j] = sep
		} else {
			v[j] = -sep
		}
	}
	return v
}

func shuffleRows(rng *rand.Rand, X, y *mat.Dense) (*mat.Dense, *mat.Dense) {
	n, d := X.Dims()
	perm := rng.Perm(n)
	sx := mat.NewDense(n, d, nil)
	sy := mat.NewDense(n, 1, nil)
	for i, p := range perm {
		sx.SetRow(i, X.RawRowView(p))
		sy.Set(i, 0, y.At(p, 0))
	}
	return sx, sy
}

// MakeBlobs draws counts[k] points around centers[k] with standard
// deviation std in every feature. Row order is class by class and labels
// are the class indices 0..K-1.
func MakeBlobs(counts []int, centers [][]float64, std float64, seed uint64) (*mat.Dense, *mat.Dense, error) {
	if len(counts) == 0 || len(counts) != len(centers) {
		return nil, nil, errors.NewValueError("MakeBlobs", "counts and centers must be non-empty and of equal length")
	}
	if !(std > 0) {
		return nil, nil, errors.NewValidationError("std", "must be positive", std)
	}
	nFeatures := len(centers[0])
	total := 0
	for k, n := range counts {
		if n < 1 {
			return nil, nil, errors.NewValidationError("counts", "every count must be positive", n)
		}
		if len(centers[k]) != nFeatures || nFeatures == 0 {
			return nil, nil, errors.NewDimensionError("MakeBlobs", nFeatures, len(centers[k]), 1)
		}
		total += n
	}

	normal := distuv.Normal{Mu: 0, Sigma: std, Src: rand.NewPCG(seed, seed)}
	X := mat.NewDense(total, nFeatures, nil)
	y := mat.NewDense(total, 1, nil)
	row := 0
	for k, n := range counts {
		for i := 0; i < n; i++ {
			for j, c := range centers[k] {
				X.Set(row, j, c+normal.Rand())
			}
			y.Set(row, 0, float64(k))
			row++
		}
	}
	return X, y, nil
}

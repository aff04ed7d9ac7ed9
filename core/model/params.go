package model

import (
	"encoding/json"
	"fmt"
)

// ParamsVersion は ModelParams の形式バージョン
const ParamsVersion = "1"

// ModelParams は学習済みモデルのパラメータを表す構造体（シリアライゼーション用）
// JSON と gob の両方で同じ形を使う。
type ModelParams struct {
	// ModelType はモデルの種類（GaussianNB）
	ModelType string `json:"model_type"`

	// Version は形式のバージョン（互換性チェック用）
	Version string `json:"version"`

	// Classes は昇順のクラスラベル
	Classes []float64 `json:"classes"`

	// ClassCount は各クラスの学習行数
	ClassCount []float64 `json:"class_count"`

	// ClassPrior は各クラスの事前確率
	ClassPrior []float64 `json:"class_prior"`

	// Theta はクラスごとの特徴量平均 (n_classes × n_features)
	Theta [][]float64 `json:"theta"`

	// Var はクラスごとの特徴量分散 (n_classes × n_features, epsilon込み)
	Var [][]float64 `json:"var"`

	// Epsilon は分散に加えた平滑化量
	Epsilon float64 `json:"epsilon"`

	// NSamples は学習に使った行数
	NSamples int `json:"n_samples"`

	// Hyperparameters はモデルのハイパーパラメータ
	Hyperparameters map[string]float64 `json:"hyperparameters,omitempty"`

	// Metadata は追加のメタデータ
	Metadata map[string]string `json:"metadata,omitempty"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`
}

// ToJSON はModelParamsをJSON形式にシリアライズ
func (mp *ModelParams) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mp, "", "  ")
}

// FromJSON はJSON形式からModelParamsをデシリアライズ
func (mp *ModelParams) FromJSON(data []byte) error {
	return json.Unmarshal(data, mp)
}

// NFeatures は特徴量の数を返す
func (mp *ModelParams) NFeatures() int {
	if len(mp.Theta) == 0 {
		return 0
	}
	return len(mp.Theta[0])
}

// Validate はModelParamsの形の整合性を検証
func (mp *ModelParams) Validate() error {
	if mp.ModelType == "" {
		return fmt.Errorf("model_type is required")
	}
	if mp.Version == "" {
		return fmt.Errorf("version is required")
	}
	if !mp.IsFitted {
		if len(mp.Theta) > 0 {
			return fmt.Errorf("unfitted model should not have parameters")
		}
		return nil
	}

	nClasses := len(mp.Classes)
	if nClasses == 0 {
		return fmt.Errorf("fitted model must have classes")
	}
	if len(mp.ClassPrior) != nClasses || len(mp.ClassCount) != nClasses {
		return fmt.Errorf("class_prior and class_count must have %d entries", nClasses)
	}
	if len(mp.Theta) != nClasses || len(mp.Var) != nClasses {
		return fmt.Errorf("theta and var must have %d rows", nClasses)
	}
	nFeatures := mp.NFeatures()
	if nFeatures == 0 {
		return fmt.Errorf("fitted model must have at least one feature")
	}
	for c := 0; c < nClasses; c++ {
		if len(mp.Theta[c]) != nFeatures || len(mp.Var[c]) != nFeatures {
			return fmt.Errorf("row %d of theta/var must have %d features", c, nFeatures)
		}
		if c > 0 && !(mp.Classes[c-1] < mp.Classes[c]) {
			return fmt.Errorf("classes must be strictly ascending")
		}
	}
	return nil
}

// Clone はModelParamsのディープコピーを作成
func (mp *ModelParams) Clone() *ModelParams {
	clone := &ModelParams{
		ModelType:       mp.ModelType,
		Version:         mp.Version,
		Classes:         append([]float64(nil), mp.Classes...),
		ClassCount:      append([]float64(nil), mp.ClassCount...),
		ClassPrior:      append([]float64(nil), mp.ClassPrior...),
		Theta:           cloneRows(mp.Theta),
		Var:             cloneRows(mp.Var),
		Epsilon:         mp.Epsilon,
		NSamples:        mp.NSamples,
		IsFitted:        mp.IsFitted,
		Hyperparameters: make(map[string]float64, len(mp.Hyperparameters)),
		Metadata:        make(map[string]string, len(mp.Metadata)),
	}
	for k, v := range mp.Hyperparameters {
		clone.Hyperparameters[k] = v
	}
	for k, v := range mp.Metadata {
		clone.Metadata[k] = v
	}
	return clone
}

func cloneRows(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = append([]float64(nil), r...)
	}
	return out
}

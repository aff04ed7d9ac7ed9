package preprocessing

import (
	"cmp"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

// LabelEncoder maps arbitrary ordered labels to float64 codes 0..C-1.
// Codes follow the sorted label order, so a classifier's class index equals
// the label's position in Classes().
//
//	enc := preprocessing.NewLabelEncoder[string]()
//	y, err := enc.FitTransform([]string{"M", "B", "B"}) // 1, 0, 0
type LabelEncoder[L cmp.Ordered] struct {
	classes []L
	index   map[L]int
}

// NewLabelEncoder は空の LabelEncoder を作成する
func NewLabelEncoder[L cmp.Ordered]() *LabelEncoder[L] {
	return &LabelEncoder[L]{}
}

// Fit はラベルの集合を学習する
func (e *LabelEncoder[L]) Fit(labels []L) error {
	if len(labels) == 0 {
		return errors.NewValueError("LabelEncoder.Fit", "empty labels")
	}
	classes := slices.Clone(labels)
	slices.Sort(classes)
	classes = slices.Compact(classes)

	e.classes = classes
	e.index = make(map[L]int, len(classes))
	for i, c := range classes {
		e.index[c] = i
	}
	return nil
}

// Transform はラベルを n×1 のコード列に変換する
func (e *LabelEncoder[L]) Transform(labels []L) (*mat.Dense, error) {
	if e.index == nil {
		return nil, errors.NewNotFittedError("LabelEncoder", "Transform")
	}
	if len(labels) == 0 {
		return nil, errors.NewValueError("LabelEncoder.Transform", "empty labels")
	}
	codes := make([]float64, len(labels))
	for i, l := range labels {
		c, ok := e.index[l]
		if !ok {
			return nil, errors.NewValueError("LabelEncoder.Transform", fmt.Sprintf("unseen label %v at position %d", l, i))
		}
		codes[i] = float64(c)
	}
	return mat.NewDense(len(codes), 1, codes), nil
}

// FitTransform は Fit と Transform を続けて行う
func (e *LabelEncoder[L]) FitTransform(labels []L) (*mat.Dense, error) {
	if err := e.Fit(labels); err != nil {
		return nil, err
	}
	return e.Transform(labels)
}

// InverseTransform maps the first column of codes back to labels.
func (e *LabelEncoder[L]) InverseTransform(codes mat.Matrix) ([]L, error) {
	if e.index == nil {
		return nil, errors.NewNotFittedError("LabelEncoder", "InverseTransform")
	}
	r, _ := codes.Dims()
	out := make([]L, r)
	for i := 0; i < r; i++ {
		v := codes.At(i, 0)
		c := int(v)
		if float64(c) != v || c < 0 || c >= len(e.classes) {
			return nil, errors.NewValueError("LabelEncoder.InverseTransform", fmt.Sprintf("invalid code %g at row %d", v, i))
		}
		out[i] = e.classes[c]
	}
	return out, nil
}

// Classes は昇順のラベルを返す
func (e *LabelEncoder[L]) Classes() []L {
	return slices.Clone(e.classes)
}

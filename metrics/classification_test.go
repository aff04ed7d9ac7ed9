package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

// vec returns nil for an empty slice, since gonum rejects zero-length vectors.
func vec(v []float64) *mat.VecDense {
	if len(v) == 0 {
		return nil
	}
	return mat.NewVecDense(len(v), v)
}

type vectorCase struct {
	name    string
	yTrue   []float64
	yPred   []float64
	want    float64
	wantErr bool
}

func runVectorCases(t *testing.T, fn func(yTrue, yPred *mat.VecDense) (float64, error), delta float64, cases []vectorCase) {
	t.Helper()
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fn(vec(tt.yTrue), vec(tt.yPred))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, delta)
		})
	}
}

func TestAUC(t *testing.T) {
	runVectorCases(t, AUC, 1e-9, []vectorCase{
		{name: "perfect ranking", yTrue: []float64{0, 0, 0, 1, 1, 1}, yPred: []float64{0.1, 0.2, 0.3, 0.7, 0.8, 0.9}, want: 1},
		{name: "inverted ranking", yTrue: []float64{0, 0, 0, 1, 1, 1}, yPred: []float64{0.9, 0.8, 0.7, 0.3, 0.2, 0.1}, want: 0},
		{name: "all scores tied", yTrue: []float64{0, 1, 0, 1}, yPred: []float64{0.5, 0.5, 0.5, 0.5}, want: 0.5},
		{name: "one discordant pair", yTrue: []float64{0, 0, 1, 1}, yPred: []float64{0.1, 0.4, 0.35, 0.8}, want: 0.75},
		{name: "partial tie", yTrue: []float64{0, 1, 0, 1}, yPred: []float64{0.2, 0.5, 0.5, 0.9}, want: 0.875},
		{name: "only positives", yTrue: []float64{1, 1, 1, 1}, yPred: []float64{0.1, 0.4, 0.35, 0.8}, want: 0.5},
		{name: "only negatives", yTrue: []float64{0, 0, 0, 0}, yPred: []float64{0.1, 0.4, 0.35, 0.8}, want: 0.5},
		{name: "non-binary labels", yTrue: []float64{0, 0.5, 1}, yPred: []float64{0.1, 0.5, 0.9}, wantErr: true},
		{name: "length mismatch", yTrue: []float64{0, 1}, yPred: []float64{0.5}, wantErr: true},
		{name: "empty", wantErr: true},
	})
}

func TestAUCMatrix(t *testing.T) {
	got, err := AUCMatrix(
		mat.NewDense(4, 2, []float64{0, 9, 0, 9, 1, 9, 1, 9}),
		mat.NewDense(4, 2, []float64{0.1, 9, 0.4, 9, 0.35, 9, 0.8, 9}),
	)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, got, 1e-9, "only the first column is used")

	_, err = AUCMatrix(nil, mat.NewDense(1, 1, []float64{0.5}))
	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr))

	_, err = AUCMatrix(&mat.Dense{}, &mat.Dense{})
	assert.Error(t, err)

	_, err = AUCMatrix(mat.NewDense(2, 1, []float64{0, 1}), mat.NewDense(3, 1, []float64{0, 1, 1}))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestBinaryLogLoss(t *testing.T) {
	runVectorCases(t, BinaryLogLoss, 1e-6, []vectorCase{
		{name: "confident and right", yTrue: []float64{0, 0, 1, 1}, yPred: []float64{0, 0, 1, 1}, want: 0},
		{name: "typical", yTrue: []float64{0, 0, 1, 1}, yPred: []float64{0.1, 0.2, 0.8, 0.9}, want: 0.1642520},
		{name: "confident and wrong", yTrue: []float64{0, 0, 1, 1}, yPred: []float64{0.9, 0.9, 0.1, 0.1}, want: 2.3025851},
		{name: "non-binary labels", yTrue: []float64{0, 0.5, 1}, yPred: []float64{0.1, 0.5, 0.9}, wantErr: true},
		{name: "empty", wantErr: true},
	})
}

func TestClassificationError(t *testing.T) {
	runVectorCases(t, ClassificationError, 1e-12, []vectorCase{
		{name: "all right", yTrue: []float64{0, 1, 2, 1, 0}, yPred: []float64{0, 1, 2, 1, 0}, want: 0},
		{name: "one wrong", yTrue: []float64{0, 1, 2, 1, 0}, yPred: []float64{0, 1, 1, 1, 0}, want: 0.2},
		{name: "all wrong", yTrue: []float64{0, 0, 0}, yPred: []float64{1, 1, 1}, want: 1},
		{name: "half wrong", yTrue: []float64{0, 0, 1, 1}, yPred: []float64{0, 1, 1, 0}, want: 0.5},
		{name: "length mismatch", yTrue: []float64{0, 1}, yPred: []float64{0}, wantErr: true},
		{name: "empty", wantErr: true},
	})
}

func TestAccuracy(t *testing.T) {
	runVectorCases(t, Accuracy, 1e-12, []vectorCase{
		{name: "all right", yTrue: []float64{3, 5, 7}, yPred: []float64{3, 5, 7}, want: 1},
		{name: "two of four", yTrue: []float64{0, 0, 1, 1}, yPred: []float64{0, 1, 1, 0}, want: 0.5},
		{name: "nan never matches", yTrue: []float64{0, 1}, yPred: []float64{0, nan()}, want: 0.5},
		{name: "empty", wantErr: true},
	})
}

func nan() float64 {
	zero := 0.0
	return zero / zero
}

func BenchmarkAUC(b *testing.B) {
	n := 1000
	yTrue := mat.NewVecDense(n, nil)
	yScore := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		yTrue.SetVec(i, float64(i%2))
		yScore.SetVec(i, float64((i*37)%n)/float64(n))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = AUC(yTrue, yScore)
	}
}

func BenchmarkBinaryLogLoss(b *testing.B) {
	n := 1000
	yTrue := mat.NewVecDense(n, nil)
	yPred := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		yTrue.SetVec(i, float64(i%2))
		yPred.SetVec(i, 0.1+0.8*float64(i%10)/10)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = BinaryLogLoss(yTrue, yPred)
	}
}

package datasets

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

func TestMakeClassificationDefault(t *testing.T) {
	X, y, err := MakeClassification(DefaultClassificationConfig())
	require.NoError(t, err)

	r, c := X.Dims()
	assert.Equal(t, 1000, r)
	assert.Equal(t, 10, c)

	counts := map[float64]int{}
	for i := 0; i < r; i++ {
		counts[y.At(i, 0)]++
	}
	assert.Len(t, counts, 2)
	// 500 per class before at most ~1% of labels are flipped
	assert.InDelta(t, 500, counts[0], 20)

	// reproducible for a fixed seed
	X2, y2, err := MakeClassification(DefaultClassificationConfig())
	require.NoError(t, err)
	assert.True(t, mat.Equal(X, X2))
	assert.True(t, mat.Equal(y, y2))

	cfg := DefaultClassificationConfig()
	cfg.Seed = 124
	X3, _, err := MakeClassification(cfg)
	require.NoError(t, err)
	assert.False(t, mat.Equal(X, X3))
}

func TestMakeClassificationSeparatesInformativeFeature(t *testing.T) {
	cfg := DefaultClassificationConfig()
	cfg.FlipY = 0
	cfg.Shuffle = false
	cfg.ClassSep = 3
	X, _, err := MakeClassification(cfg)
	require.NoError(t, err)

	// without shuffling, class 0 fills the first 500 rows
	class0 := mat.Col(nil, 0, X.Slice(0, 500, 0, 10))
	class1 := mat.Col(nil, 0, X.Slice(500, 1000, 0, 10))
	assert.InDelta(t, -3, stat.Mean(class0, nil), 0.2)
	assert.InDelta(t, 3, stat.Mean(class1, nil), 0.2)

	noise := mat.Col(nil, 9, X)
	assert.InDelta(t, 0, stat.Mean(noise, nil), 0.15)
	assert.InDelta(t, 1, stat.Variance(noise, nil), 0.15)
}

func TestMakeClassificationValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *ClassificationConfig)
	}{
		{"one class", func(c *ClassificationConfig) { c.NClasses = 1 }},
		{"too many classes", func(c *ClassificationConfig) { c.NClasses = 5 }},
		{"informative > features", func(c *ClassificationConfig) { c.NInformative = 11 }},
		{"no features", func(c *ClassificationConfig) { c.NFeatures = 0 }},
		{"flip_y", func(c *ClassificationConfig) { c.FlipY = 2 }},
		{"samples", func(c *ClassificationConfig) { c.NSamples = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultClassificationConfig()
			tt.mutate(&cfg)
			_, _, err := MakeClassification(cfg)
			var valErr *errors.ValidationError
			assert.True(t, errors.As(err, &valErr), "got %v", err)
		})
	}
}

func TestMakeBlobs(t *testing.T) {
	X, y, err := MakeBlobs([]int{30, 20}, [][]float64{{0, 0}, {10, 10}}, 0.5, 7)
	require.NoError(t, err)
	r, c := X.Dims()
	assert.Equal(t, 50, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 0.0, y.At(29, 0))
	assert.Equal(t, 1.0, y.At(30, 0))
	assert.InDelta(t, 10, stat.Mean(mat.Col(nil, 0, X.Slice(30, 50, 0, 2)), nil), 0.5)

	_, _, err = MakeBlobs([]int{1}, [][]float64{{0}, {1}}, 1, 0)
	assert.Error(t, err)
	_, _, err = MakeBlobs([]int{1, 1}, [][]float64{{0}, {1}}, 0, 0)
	assert.Error(t, err)
	_, _, err = MakeBlobs([]int{1, 1}, [][]float64{{0}, {1, 2}}, 1, 0)
	assert.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	input := "radius, texture, label\n1.5, 2, 0\n3, 4.25, 1\n"
	ds, err := ReadCSV(strings.NewReader(input), "label")
	require.NoError(t, err)

	assert.Equal(t, []string{"radius", "texture"}, ds.Features)
	assert.Equal(t, "label", ds.LabelName)
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{1.5, 2, 3, 4.25}), ds.X))
	require.NotNil(t, ds.Y)
	assert.Equal(t, []float64{0, 1}, mat.Col(nil, 0, ds.Y))

	// label column in the middle
	ds, err = ReadCSV(strings.NewReader("a,y,b\n1,7,2\n"), "y")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, ds.X.RawRowView(0))
	assert.Equal(t, 7.0, ds.Y.At(0, 0))

	// no label column present
	ds, err = ReadCSV(strings.NewReader("a,b\n1,2\n"), "label")
	require.NoError(t, err)
	assert.Nil(t, ds.Y)
}

func TestReadCSVBooleanCells(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	errors.SetZerologWarnFunc(nil)
	t.Cleanup(func() { errors.SetWarningHandler(nil) })

	ds, err := ReadCSV(strings.NewReader("x,smoker,label\n1,true,0\n2,FALSE,1\n3,true,1\n"), "label")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 1}, mat.Col(nil, 1, ds.X))

	require.Len(t, warnings, 1, "one warning per converted column")
	var conv *errors.DataConversionWarning
	require.True(t, errors.As(warnings[0], &conv))
	assert.Equal(t, "bool", conv.FromType)
	assert.Contains(t, conv.Reason, "smoker")
}

func TestReadCSVErrors(t *testing.T) {
	for name, input := range map[string]string{
		"empty":       "",
		"header only": "a,label\n",
		"not numeric": "a,label\nx,1\n",
		"ragged":      "a,label\n1,2,3\n",
		"label only":  "label\n1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(input), "label")
			assert.Error(t, err)
		})
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{0.1, -2, 3e-5, 4, 5, 6.5})
	y := mat.NewDense(3, 1, []float64{0, 1, 0})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, X, y, nil, "label"))
	assert.True(t, strings.HasPrefix(buf.String(), "x0,x1,label\n"))

	ds, err := ReadCSV(&buf, "label")
	require.NoError(t, err)
	assert.True(t, mat.Equal(X, ds.X))
	assert.True(t, mat.Equal(y, ds.Y))

	assert.Error(t, WriteCSV(&buf, X, y, []string{"only"}, "label"))
	assert.Error(t, WriteCSV(&buf, X, mat.NewDense(2, 1, nil), nil, "label"))
}

func TestWriteLabels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLabels(&buf, "prediction", mat.NewDense(2, 1, []float64{1, 0})))
	assert.Equal(t, "prediction\n1\n0\n", buf.String())
}

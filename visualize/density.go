// Package visualize draws fitted class-conditional densities with gonum/plot.
package visualize

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/pkg/log"
)

// DensityModel is the fitted state a density plot needs.
// *naive_bayes.GaussianNB satisfies it.
type DensityModel interface {
	IsFitted() bool
	Classes() []float64
	Theta() *mat.Dense
	Var() *mat.Dense
}

// DefaultSize は保存する画像の一辺の長さ
const DefaultSize = 5 * vg.Inch

// NewDensityPlot builds a plot of each class's fitted Gaussian for one
// feature, with the class's training points drawn as a strip below the
// curves. Classes with zero variance have no curve; their strip is kept.
func NewDensityPlot(m DensityModel, X, y mat.Matrix, feature int) (*plot.Plot, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("GaussianNB", "PlotClassDensities")
	}
	theta, variance := m.Theta(), m.Var()
	_, nFeatures := theta.Dims()
	if feature < 0 || feature >= nFeatures {
		return nil, errors.NewValidationError("feature", fmt.Sprintf("must be in [0, %d)", nFeatures), feature)
	}
	n, d := X.Dims()
	if d != nFeatures {
		return nil, errors.NewDimensionError("PlotClassDensities", nFeatures, d, 1)
	}
	if r, _ := y.Dims(); r != n {
		return nil, errors.NewDimensionError("PlotClassDensities", n, r, 0)
	}

	classes := m.Classes()
	xs := mat.Col(nil, feature, X)
	xMin, xMax := floats.Min(xs), floats.Max(xs)
	if pad := 0.1 * (xMax - xMin); pad > 0 {
		xMin, xMax = xMin-pad, xMax+pad
	} else {
		xMin, xMax = xMin-1, xMax+1
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Class-conditional densities of feature %d", feature)
	p.X.Label.Text = fmt.Sprintf("x%d", feature)
	p.Y.Label.Text = "density"

	logger := log.GetLoggerWithName("visualize")
	peak := 0.0
	for c, label := range classes {
		v := variance.At(c, feature)
		if !(v > 0) || !errors.IsFinite(v) {
			logger.Warn("Skipping density curve", "class", label, "variance", v)
			continue
		}
		dist := distuv.Normal{Mu: theta.At(c, feature), Sigma: math.Sqrt(v)}
		peak = math.Max(peak, dist.Prob(dist.Mu))

		fn := plotter.NewFunction(dist.Prob)
		fn.XMin, fn.XMax = xMin, xMax
		fn.Samples = 200
		fn.Color = plotutil.Color(c)
		fn.Width = vg.Points(2)
		p.Add(fn)
		p.Legend.Add(fmt.Sprintf("class %g", label), fn)
	}
	if peak == 0 {
		peak = 1
	}

	index := make(map[float64]int, len(classes))
	for c, label := range classes {
		index[label] = c
	}
	strips := make([]plotter.XYs, len(classes))
	for i := 0; i < n; i++ {
		c, ok := index[y.At(i, 0)]
		if !ok {
			continue
		}
		strips[c] = append(strips[c], plotter.XY{X: xs[i], Y: -0.05 * peak * float64(c+1)})
	}
	for c, pts := range strips {
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, errors.Wrap(err, "build scatter")
		}
		s.Color = plotutil.Color(c)
		s.Shape = draw.CrossGlyph{}
		s.Radius = vg.Points(2)
		p.Add(s)
	}

	p.X.Min, p.X.Max = xMin, xMax
	p.Y.Min = -0.05 * peak * float64(len(classes)+1)
	p.Y.Max = peak * 1.1
	return p, nil
}

// PlotClassDensities saves NewDensityPlot to path. The image format follows
// the file extension (.png, .svg, .pdf, ...).
func PlotClassDensities(m DensityModel, X, y mat.Matrix, feature int, path string) error {
	p, err := NewDensityPlot(m, X, y, feature)
	if err != nil {
		return err
	}
	if err := p.Save(DefaultSize, DefaultSize, path); err != nil {
		return errors.Wrapf(err, "save density plot to %s", path)
	}
	log.GetLoggerWithName("visualize").Info("Saved density plot", "path", path)
	return nil
}

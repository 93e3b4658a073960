// Package report renders the diagnostic plots of a preparation and
// training run: the target distribution and the predicted-vs-actual
// scatter.
package report

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/hhprep/hhprep/pkg/errors"
)

// SaveTargetHistogram renders the distribution of the target vector.
func SaveTargetHistogram(path string, y *mat.VecDense, bins int) error {
	if y.Len() == 0 {
		return errors.NewValueError("SaveTargetHistogram", "empty vector")
	}
	if bins <= 0 {
		bins = 50
	}

	vals := make(plotter.Values, y.Len())
	for i := 0; i < y.Len(); i++ {
		vals[i] = y.AtVec(i)
	}

	h, err := plotter.NewHist(vals, bins)
	if err != nil {
		return errors.Wrap(err, "build histogram")
	}

	p := plot.New()
	p.Title.Text = "Salary distribution"
	p.X.Label.Text = "salary, rub"
	p.Y.Label.Text = "count"
	p.Add(h)

	return errors.Wrapf(p.Save(6*vg.Inch, 4*vg.Inch, path), "save %s", path)
}

// SavePredictedVsActual renders predictions against true values with the
// identity line for reference.
func SavePredictedVsActual(path string, yTrue, yPred *mat.VecDense) error {
	n := yTrue.Len()
	if n == 0 {
		return errors.NewValueError("SavePredictedVsActual", "empty vector")
	}
	if yPred.Len() != n {
		return errors.NewDimensionError("SavePredictedVsActual", n, yPred.Len(), 0)
	}

	pts := make(plotter.XYs, n)
	lo, hi := yTrue.AtVec(0), yTrue.AtVec(0)
	for i := 0; i < n; i++ {
		yt := yTrue.AtVec(i)
		pts[i] = plotter.XY{X: yt, Y: yPred.AtVec(i)}
		if yt < lo {
			lo = yt
		}
		if yt > hi {
			hi = yt
		}
	}

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "build scatter")
	}
	s.Radius = vg.Points(1.5)

	ident, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return errors.Wrap(err, "build identity line")
	}

	p := plot.New()
	p.Title.Text = "Predicted vs actual"
	p.X.Label.Text = "actual"
	p.Y.Label.Text = "predicted"
	p.Add(s, ident)

	return errors.Wrapf(p.Save(6*vg.Inch, 6*vg.Inch, path), "save %s", path)
}

package evaluation

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

// PlotSweep draws mean cross-validated accuracy against the learning rate,
// one line per λ, and saves it to path. The image format follows the file
// extension (.png, .svg, .pdf).
func PlotSweep(points []SweepPoint, path string) error {
	if len(points) == 0 {
		return errors.NewValueError("PlotSweep", "no sweep points")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s loss, %s", points[0].Config.Loss, points[0].Config.Regularization)
	p.X.Label.Text = "learning rate"
	p.Y.Label.Text = "mean accuracy"
	p.Y.Min = 0
	p.Y.Max = 1
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for i, lambda := range lambdas(points) {
		var pts plotter.XYs
		for _, sp := range points {
			if sp.Config.Lambda == lambda {
				pts = append(pts, plotter.XY{X: sp.Config.LearningRate, Y: sp.Result.MeanAccuracy})
			}
		}
		sort.Slice(pts, func(a, b int) bool { return pts[a].X < pts[b].X })

		line, scatter, err := plotter.NewLinePoints(pts)
		if err != nil {
			return errors.Wrapf(err, "plot lambda=%g", lambda)
		}
		line.Color = plotutil.Color(i)
		line.LineStyle.Width = vg.Points(1.5)
		scatter.Color = plotutil.Color(i)
		scatter.Shape = draw.CrossGlyph{}
		scatter.Radius = vg.Points(3)

		p.Add(line, scatter)
		p.Legend.Add(fmt.Sprintf("λ=%g", lambda), line, scatter)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}

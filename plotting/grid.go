package plotting

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// GridScores plots the mean cross-validation score of each candidate with a
// one-standard-deviation error bar. Candidates with a NaN mean are left out.
func GridScores(labels []string, means, stds []float64, title string) (*plot.Plot, error) {
	if err := checkLengths(len(labels), len(means), "means"); err != nil {
		return nil, err
	}
	if err := checkLengths(len(labels), len(stds), "stds"); err != nil {
		return nil, err
	}

	var ep errorPoints
	var ticks []plot.Tick
	for i := range labels {
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: labels[i]})
		if math.IsNaN(means[i]) {
			continue
		}
		std := stds[i]
		if math.IsNaN(std) {
			std = 0
		}
		ep.XYs = append(ep.XYs, plotter.XY{X: float64(i), Y: means[i]})
		ep.YErrors = append(ep.YErrors, struct{ Low, High float64 }{std, std})
	}
	if len(ep.XYs) == 0 {
		return nil, ErrNoData
	}

	line, points, err := plotter.NewLinePoints(ep.XYs)
	if err != nil {
		return nil, err
	}
	line.Color = barColor
	points.Color = barColor
	points.Radius = vg.Points(3)

	bars, err := plotter.NewYErrorBars(ep)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Candidate"
	p.Y.Label.Text = "Mean CV score"
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Add(plotter.NewGrid(), line, points, bars)
	return p, nil
}

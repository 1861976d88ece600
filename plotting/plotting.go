// Package plotting renders experiment charts with gonum/plot: ROC curves,
// coefficient bar charts, confusion-matrix heatmaps and grid-search scores.
package plotting

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/jtbricker/mlexp"
	"github.com/jtbricker/mlexp/scoring"
	"github.com/jtbricker/mlexp/summary"
)

// Default output size.
const (
	Width  = 6 * vg.Inch
	Height = 4.5 * vg.Inch
)

// ErrNoData indicates an empty input series.
var ErrNoData = errors.New("plotting: no data")

var (
	curveColor  = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	chanceColor = color.RGBA{R: 127, G: 127, B: 127, A: 255}
	barColor    = color.RGBA{R: 31, G: 119, B: 180, A: 255}
)

// ROC plots the receiver operating characteristic of scores against yTrue with a
// chance diagonal, and returns the area under the curve.
func ROC(yTrue []int, scores []float64, title string) (*plot.Plot, float64, error) {
	curve, err := scoring.ROC(yTrue, scores)
	if err != nil {
		return nil, 0, err
	}
	auc := curve.AUC()

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "False Positive Rate"
	p.Y.Label.Text = "True Positive Rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	pts := make(plotter.XYs, len(curve.FPR))
	for i := range pts {
		pts[i].X = curve.FPR[i]
		pts[i].Y = curve.TPR[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, 0, fmt.Errorf("roc line: %w", err)
	}
	line.Color = curveColor
	line.Width = vg.Points(2)

	chance, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return nil, 0, fmt.Errorf("chance line: %w", err)
	}
	chance.Color = chanceColor
	chance.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(plotter.NewGrid(), chance, line)
	p.Legend.Add(fmt.Sprintf("ROC (AUC = %.3f)", auc), line)
	p.Legend.Add("chance", chance)
	return p, auc, nil
}

// Coefficients draws a bar per feature, largest magnitude first.
func Coefficients(names []string, coefs []float64, title string) (*plot.Plot, error) {
	ranked, err := summary.RankImportances(names, coefs)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, ErrNoData
	}

	values := make(plotter.Values, len(ranked))
	labels := make([]string, len(ranked))
	for i, imp := range ranked {
		values[i] = imp.Value
		labels[i] = imp.Name
	}

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return nil, fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Coefficient"
	p.Add(plotter.NewGrid(), bars)
	p.NominalX(labels...)
	return p, nil
}

// Save writes p to path; the format follows the file extension.
func Save(p *plot.Plot, path string) error {
	return p.Save(Width, Height, path)
}

// Render writes p to w in the given format ("png", "svg", "pdf", ...).
func Render(w io.Writer, p *plot.Plot, format string) error {
	wt, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func checkLengths(a, b int, what string) error {
	if a != b {
		return fmt.Errorf("%w: %d %s", mlexp.ErrLengthMismatch, b, what)
	}
	return nil
}

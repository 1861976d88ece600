package plotting

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"

	"github.com/jtbricker/mlexp"
)

// cmGrid exposes a 2x2 confusion matrix as a heat map grid. Column is the
// predicted label and row the true label.
type cmGrid [2][2]float64

func (g cmGrid) Dims() (c, r int)   { return 2, 2 }
func (g cmGrid) Z(c, r int) float64 { return g[r][c] }
func (g cmGrid) X(c int) float64    { return float64(c) }
func (g cmGrid) Y(r int) float64    { return float64(r) }

// bounds returns the colour scale range, skipping NaN cells and widening a
// constant grid.
func (g cmGrid) bounds() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range g {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// ConfusionMatrix draws c as a heat map annotated with each cell's value. With
// normalize, each true-class row is divided by its total.
func ConfusionMatrix(c mlexp.ContingencyCounts, normalize bool, title string) (*plot.Plot, error) {
	if c.Total() == 0 {
		return nil, ErrNoData
	}

	m := c.Matrix()
	var g cmGrid
	for r := 0; r < 2; r++ {
		total := float64(m[r][0] + m[r][1])
		for col := 0; col < 2; col++ {
			g[r][col] = float64(m[r][col])
			if normalize {
				g[r][col] /= total
			}
		}
	}

	hm := plotter.NewHeatMap(g, palette.Heat(12, 1))
	hm.NaN = color.Gray{Y: 200}
	hm.Min, hm.Max = g.bounds()

	var pts plotter.XYs
	var text []string
	for r := 0; r < 2; r++ {
		for col := 0; col < 2; col++ {
			pts = append(pts, plotter.XY{X: float64(col), Y: float64(r)})
			if normalize {
				text = append(text, fmt.Sprintf("%.2f", g[r][col]))
			} else {
				text = append(text, fmt.Sprintf("%d", m[r][col]))
			}
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: text})
	if err != nil {
		return nil, fmt.Errorf("cell labels: %w", err)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Predicted label"
	p.Y.Label.Text = "True label"
	ticks := plot.ConstantTicks([]plot.Tick{
		{Value: 0, Label: "negative"},
		{Value: 1, Label: "positive"},
	})
	p.X.Tick.Marker = ticks
	p.Y.Tick.Marker = ticks
	p.Add(hm, labels)
	return p, nil
}

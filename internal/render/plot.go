package render

import (
	"fmt"
	"image/color"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/roach88/benchplot/internal/config"
	"github.com/roach88/benchplot/internal/ir"
)

// Title returns the chart title for a measurement type, e.g. "Eval benches".
func Title(measurementType string) string {
	return cases.Title(language.English).String(measurementType) + " benches"
}

// Colors returns n colours from the named brewer palette. Palettes hold at
// least three colours, so smaller requests take a prefix. When the palette
// is unknown or too small the plotutil default cycle is used.
func Colors(name string, n int) []color.Color {
	out := make([]color.Color, n)
	if n == 0 {
		return out
	}
	pal, err := brewer.GetPalette(brewer.TypeAny, name, max(n, 3))
	if err == nil {
		copy(out, pal.Colors())
		return out
	}
	for i := range out {
		out[i] = plotutil.Color(i)
	}
	return out
}

// YRange returns decade bounds enclosing the positive values of g.
// A grid with nothing to draw gets [1, 10].
func YRange(g *ir.Grid) (lo, hi float64) {
	low, high, ok := g.PresentRange()
	if !ok {
		return 1, 10
	}
	lo = math.Pow(10, math.Floor(math.Log10(low)))
	hi = math.Pow(10, math.Ceil(math.Log10(high)))
	if hi <= lo {
		hi = lo * 10
	}
	return lo, hi
}

// Plot builds the gonum chart for one grid.
func Plot(g *ir.Grid, chart config.Chart) (*plot.Plot, error) {
	if len(g.Categories) == 0 || len(g.Implementations) == 0 {
		return nil, fmt.Errorf("grid %q has no rows or columns", g.MeasurementType)
	}

	p := plot.New()
	p.Title.Text = Title(g.MeasurementType)
	p.Y.Label.Text = chart.YLabel
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	p.Add(grid)

	colors := Colors(chart.Palette, len(g.Implementations))
	for j, impl := range g.Implementations {
		b := &bars{
			values: g.Column(j),
			index:  j,
			count:  len(g.Implementations),
			fill:   chart.BarFill,
			color:  colors[j],
			line:   draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)},
		}
		p.Add(b)
		p.Legend.Add(impl, b)
	}
	p.Legend.Top = true

	ticks := make([]plot.Tick, len(g.Categories))
	for i, cat := range g.Categories {
		ticks[i] = plot.Tick{Value: float64(i), Label: cat}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Min = -0.5
	p.X.Max = float64(len(g.Categories)) - 0.5

	p.Y.Min, p.Y.Max = YRange(g)

	return p, nil
}

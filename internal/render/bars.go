package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// bars draws one implementation's column of a grid. Bar i sits inside the
// category slot at x = i, shifted by the column's position in the group.
type bars struct {
	values []*float64

	// index and count place this column within each group.
	index int
	count int
	// fill is the fraction of a slot covered by the whole group.
	fill float64

	color color.Color
	line  draw.LineStyle
}

func (b *bars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	slot := trX(1) - trX(0)
	width := slot * vg.Length(b.fill) / vg.Length(b.count)
	offset := width * vg.Length(float64(b.index)-float64(b.count-1)/2)
	bottom := trY(plt.Y.Min)

	for i, v := range b.values {
		if v == nil || *v <= 0 || math.IsInf(*v, 0) || math.IsNaN(*v) {
			continue
		}
		x := trX(float64(i)) + offset
		if !c.ContainsX(x) {
			continue
		}
		left, right := x-width/2, x+width/2
		top := trY(*v)

		pts := []vg.Point{
			{X: left, Y: bottom},
			{X: left, Y: top},
			{X: right, Y: top},
			{X: right, Y: bottom},
		}
		c.FillPolygon(b.color, c.ClipPolygonY(pts))
		c.StrokeLines(b.line, c.ClipLinesY(append(pts, pts[0]))...)
	}
}

// DataRange covers every category slot and the positive values only; zero
// has no place on a log axis.
func (b *bars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = -0.5, float64(len(b.values))-0.5
	ymin, ymax = math.Inf(1), math.Inf(-1)
	for _, v := range b.values {
		if v == nil || *v <= 0 {
			continue
		}
		ymin = math.Min(ymin, *v)
		ymax = math.Max(ymax, *v)
	}
	if math.IsInf(ymin, 1) {
		ymin, ymax = 1, 10
	}
	return xmin, xmax, ymin, ymax
}

func (b *bars) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(b.color, c.ClipPolygonY(pts))
	c.StrokeLines(b.line, c.ClipLinesY(append(pts, pts[0]))...)
}

package render

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/roach88/benchplot/internal/config"
	"github.com/roach88/benchplot/internal/ir"
)

// Encode renders g in the given image format.
func Encode(g *ir.Grid, format string, chart config.Chart) ([]byte, error) {
	if format == config.ImageHTML {
		return EncodeHTML(g, chart)
	}

	p, err := Plot(g, chart)
	if err != nil {
		return nil, err
	}

	w := vg.Length(chart.Width) * vg.Inch
	h := vg.Length(chart.Height) * vg.Inch

	var buf bytes.Buffer
	switch format {
	case config.ImagePNG, config.ImageJPEG:
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(chart.DPI))
		p.Draw(draw.New(c))
		if format == config.ImagePNG {
			_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(&buf)
		} else {
			_, err = vgimg.JpegCanvas{Canvas: c}.WriteTo(&buf)
		}
	case config.ImageSVG:
		c := vgsvg.New(w, h)
		p.Draw(draw.New(c))
		_, err = c.WriteTo(&buf)
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding %s chart for %q: %w", format, g.MeasurementType, err)
	}
	return buf.Bytes(), nil
}

package render

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/roach88/benchplot/internal/config"
	"github.com/roach88/benchplot/internal/ir"
)

// pixelsPerInch converts the configured chart size for the browser.
const pixelsPerInch = 96

// EncodeHTML renders g as a standalone go-echarts page.
// The chart ID is derived from the measurement type so repeated renders match.
func EncodeHTML(g *ir.Grid, chart config.Chart) ([]byte, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: Title(g.MeasurementType),
			ChartID:   "benchplot_" + g.MeasurementType,
			Width:     fmt.Sprintf("%dpx", int(chart.Width*pixelsPerInch)),
			Height:    fmt.Sprintf("%dpx", int(chart.Height*pixelsPerInch)),
		}),
		charts.WithTitleOpts(opts.Title{Title: Title(g.MeasurementType)}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "bottom"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Type: "log", Name: chart.YLabel}),
	)

	bar.SetXAxis(g.Categories)
	for j, impl := range g.Implementations {
		column := g.Column(j)
		data := make([]opts.BarData, len(column))
		for i, v := range column {
			if v == nil || *v <= 0 {
				// echarts leaves a gap for "-"
				data[i] = opts.BarData{Value: "-"}
				continue
			}
			data[i] = opts.BarData{Value: *v}
		}
		bar.AddSeries(impl, data)
	}

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return nil, fmt.Errorf("rendering html chart for %q: %w", g.MeasurementType, err)
	}
	return buf.Bytes(), nil
}

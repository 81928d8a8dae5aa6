// Package render turns aggregated grids into grouped bar charts.
//
// Each grid becomes one chart: a group per category along the x axis, one bar
// per implementation inside each group and a logarithmic y axis. Absent and
// non-positive cells leave a gap.
//
// Raster and vector output (png, jpg, svg) is drawn with gonum/plot. The html
// format is an interactive go-echarts page with the same layout.
//
// WriteAll renders every grid in memory before touching the output
// directory, so a failing grid never leaves partial output behind.
package render

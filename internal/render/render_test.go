package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/benchplot/internal/config"
	"github.com/roach88/benchplot/internal/ir"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// smallChart keeps raster tests fast.
func smallChart() config.Chart {
	c := config.Default().Chart
	c.Width, c.Height, c.DPI = 4, 3, 50
	return c
}

func fullGrid(mt string) *ir.Grid {
	cfg := config.Default()
	g := ir.NewGrid(mt, cfg.Categories, cfg.Implementations)
	v := 12.5
	for _, cat := range cfg.Categories {
		for _, impl := range cfg.Implementations {
			g.Set(cat, impl, v)
			v *= 3
		}
	}
	return g
}

func sparseGrid() *ir.Grid {
	cfg := config.Default()
	g := ir.NewGrid("eval", cfg.Categories, cfg.Implementations)
	g.Set("simple", "fee", 123)
	g.Set("complex", "meval", 0)
	return g
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Eval benches", Title("eval"))
	assert.Equal(t, "Parse benches", Title("parse"))
}

func TestColors(t *testing.T) {
	colors := Colors("Paired", 2)
	require.Len(t, colors, 2)
	assert.NotEqual(t, colors[0], colors[1])

	assert.Len(t, Colors("Paired", 4), 4)
	assert.Empty(t, Colors("Paired", 0))

	fallback := Colors("NoSuchPalette", 3)
	require.Len(t, fallback, 3)
	for _, c := range fallback {
		assert.NotNil(t, c)
	}
}

func TestYRange(t *testing.T) {
	lo, hi := YRange(sparseGrid())
	assert.Equal(t, 100.0, lo)
	assert.Equal(t, 1000.0, hi)

	cfg := config.Default()
	lo, hi = YRange(ir.NewGrid("eval", cfg.Categories, cfg.Implementations))
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 10.0, hi)

	g := ir.NewGrid("eval", []string{"simple"}, []string{"fee"})
	g.Set("simple", "fee", 100)
	lo, hi = YRange(g)
	assert.Equal(t, 100.0, lo)
	assert.Equal(t, 1000.0, hi)
}

func TestPlot_RejectsEmptyAxes(t *testing.T) {
	_, err := Plot(ir.NewGrid("eval", nil, []string{"fee"}), smallChart())
	require.Error(t, err)
}

func TestBars_DataRangeSkipsAbsentAndZero(t *testing.T) {
	five, zero, fifty := 5.0, 0.0, 50.0
	b := &bars{values: []*float64{nil, &five, &zero, &fifty}}

	xmin, xmax, ymin, ymax := b.DataRange()
	assert.Equal(t, -0.5, xmin)
	assert.Equal(t, 3.5, xmax)
	assert.Equal(t, 5.0, ymin)
	assert.Equal(t, 50.0, ymax)

	empty := &bars{values: []*float64{nil, &zero}}
	_, _, ymin, ymax = empty.DataRange()
	assert.Equal(t, 1.0, ymin)
	assert.Equal(t, 10.0, ymax)
}

// svgPaths renders one category with fee at 20 ns and meval set by set.
func svgPaths(t *testing.T, set func(g *ir.Grid)) int {
	t.Helper()
	g := ir.NewGrid("eval", []string{"simple"}, []string{"fee", "meval"})
	g.Set("simple", "fee", 20)
	set(g)
	data, err := Encode(g, config.ImageSVG, smallChart())
	require.NoError(t, err)
	return strings.Count(string(data), "<path")
}

func TestEncode_GapsAbsentAndZeroCells(t *testing.T) {
	absent := svgPaths(t, func(*ir.Grid) {})
	present := svgPaths(t, func(g *ir.Grid) { g.Set("simple", "meval", 30) })
	zero := svgPaths(t, func(g *ir.Grid) { g.Set("simple", "meval", 0) })

	// a bar is one fill plus one outline
	assert.Equal(t, absent+2, present)
	assert.Equal(t, absent, zero)
}

func TestEncode_PNG(t *testing.T) {
	data, err := Encode(fullGrid("eval"), config.ImagePNG, smallChart())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngSignature))
}

func TestEncode_Deterministic(t *testing.T) {
	for _, format := range []string{config.ImagePNG, config.ImageSVG, config.ImageHTML} {
		t.Run(format, func(t *testing.T) {
			first, err := Encode(sparseGrid(), format, smallChart())
			require.NoError(t, err)
			second, err := Encode(sparseGrid(), format, smallChart())
			require.NoError(t, err)
			assert.True(t, bytes.Equal(first, second), "renders differ")
		})
	}
}

func TestEncode_JPEG(t *testing.T) {
	data, err := Encode(sparseGrid(), config.ImageJPEG, smallChart())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xff, 0xd8}))
}

func TestEncode_SVG(t *testing.T) {
	data, err := Encode(sparseGrid(), config.ImageSVG, smallChart())
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestEncode_EmptyGridStillRenders(t *testing.T) {
	cfg := config.Default()
	g := ir.NewGrid("parse", cfg.Categories, cfg.Implementations)

	data, err := Encode(g, config.ImagePNG, smallChart())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngSignature))
}

func TestEncode_UnknownFormat(t *testing.T) {
	_, err := Encode(sparseGrid(), "bmp", smallChart())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image format")
}

func TestEncodeHTML(t *testing.T) {
	data, err := EncodeHTML(sparseGrid(), smallChart())
	require.NoError(t, err)

	html := string(data)
	assert.Contains(t, html, "benchplot_eval")
	assert.Contains(t, html, "Eval benches")
	assert.Contains(t, html, "log")
	for _, impl := range config.Default().Implementations {
		assert.Contains(t, html, impl)
	}
}

func TestWriteAll_NoGrids(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = filepath.Join(t.TempDir(), "plots")

	outputs, err := WriteAll(nil, cfg)
	require.NoError(t, err)
	assert.Empty(t, outputs)

	_, err = os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(err), "output directory must not be created")
}

func TestWriteAll_OneFilePerGrid(t *testing.T) {
	cfg := config.Default()
	cfg.Chart = smallChart()
	cfg.OutputDir = filepath.Join(t.TempDir(), "nested", "plots")

	outputs, err := WriteAll([]*ir.Grid{fullGrid("parse"), fullGrid("eval")}, cfg)
	require.NoError(t, err)
	require.Len(t, outputs, 2)

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"cmp_eval_bench.png", "cmp_parse_bench.png"}, names)

	assert.Equal(t, "parse", outputs[0].MeasurementType)
	assert.Equal(t, 16, outputs[0].Present)
	assert.Equal(t, 16, outputs[0].Cells)

	data, err := os.ReadFile(outputs[1].Path)
	require.NoError(t, err)
	assert.Equal(t, outputs[1].Bytes, len(data))
}

func TestWriteAll_Idempotent(t *testing.T) {
	cfg := config.Default()
	cfg.Chart = smallChart()
	cfg.OutputDir = t.TempDir()

	first, err := WriteAll([]*ir.Grid{sparseGrid()}, cfg)
	require.NoError(t, err)
	a, err := os.ReadFile(first[0].Path)
	require.NoError(t, err)

	second, err := WriteAll([]*ir.Grid{sparseGrid()}, cfg)
	require.NoError(t, err)
	b, err := os.ReadFile(second[0].Path)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(a, b))
}

func TestWriteAll_FailureWritesNothing(t *testing.T) {
	cfg := config.Default()
	cfg.Chart = smallChart()
	cfg.OutputDir = filepath.Join(t.TempDir(), "plots")

	bad := ir.NewGrid("eval", nil, nil)
	_, err := WriteAll([]*ir.Grid{fullGrid("parse"), bad}, cfg)
	require.Error(t, err)

	_, err = os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(err))
}

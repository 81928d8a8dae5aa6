package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/benchplot/internal/config"
	"github.com/roach88/benchplot/internal/ir"
)

// Output is one rendered chart.
type Output struct {
	MeasurementType string `json:"measurement_type"`
	Path            string `json:"path"`
	Bytes           int    `json:"bytes"`
	Present         int    `json:"present"`
	Cells           int    `json:"cells"`
}

// WriteAll renders every grid and writes one file per grid into
// cfg.OutputDir. Nothing is written unless every grid renders; the output
// directory is only created when there is at least one grid.
func WriteAll(grids []*ir.Grid, cfg *config.Config) ([]Output, error) {
	if len(grids) == 0 {
		return nil, nil
	}

	images := make([][]byte, len(grids))
	for i, g := range grids {
		data, err := Encode(g, cfg.Image, cfg.Chart)
		if err != nil {
			return nil, fmt.Errorf("rendering %q: %w", g.MeasurementType, err)
		}
		images[i] = data
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	outputs := make([]Output, 0, len(grids))
	for i, g := range grids {
		path := filepath.Join(cfg.OutputDir, cfg.OutputName(g.MeasurementType))
		if err := os.WriteFile(path, images[i], 0644); err != nil {
			return outputs, fmt.Errorf("writing %s: %w", path, err)
		}
		outputs = append(outputs, Output{
			MeasurementType: g.MeasurementType,
			Path:            path,
			Bytes:           len(images[i]),
			Present:         g.Present(),
			Cells:           len(g.Categories) * len(g.Implementations),
		})
	}
	return outputs, nil
}

// Package aggregate pivots scanned records into one grid per measurement type.
//
// Grouping follows the configured measurement type order. Each grid has the
// configured categories as rows and the configured implementations as columns;
// combinations with no record stay absent. Records whose tags fall outside the
// configuration are reported, never charted.
package aggregate

import (
	"fmt"

	"github.com/roach88/benchplot/internal/config"
	"github.com/roach88/benchplot/internal/ir"
	"github.com/roach88/benchplot/internal/scan"
)

// ErrCodeUnknownTag marks a record carrying a tag outside the configuration.
const ErrCodeUnknownTag = "E402"

// Report is the outcome of one aggregation.
type Report struct {
	// Grids holds one grid per configured measurement type present in the
	// records, in configured order.
	Grids []*ir.Grid
	// Issues lists records excluded because of unknown tags.
	Issues []scan.Issue
}

// Grid returns the grid for measurementType, or nil.
func (r *Report) Grid(measurementType string) *ir.Grid {
	for _, g := range r.Grids {
		if g.MeasurementType == measurementType {
			return g
		}
	}
	return nil
}

// Build groups records by measurement type and pivots each group.
func Build(records []ir.Record, cfg *config.Config) *Report {
	report := &Report{}
	byType := make(map[string][]ir.Record)

	for _, r := range records {
		if problem := unknownTag(r.Key, cfg); problem != "" {
			report.Issues = append(report.Issues, scan.Issue{
				Code:    ErrCodeUnknownTag,
				Dir:     source(r),
				Message: problem,
			})
			continue
		}
		byType[r.MeasurementType] = append(byType[r.MeasurementType], r)
	}

	for _, mt := range cfg.MeasurementTypes {
		group, ok := byType[mt]
		if !ok {
			continue
		}
		g := ir.NewGrid(mt, cfg.Categories, cfg.Implementations)
		for _, r := range group {
			g.Set(r.Category, r.Implementation, r.Value)
		}
		report.Grids = append(report.Grids, g)
	}

	return report
}

func unknownTag(k ir.Key, cfg *config.Config) string {
	switch {
	case !cfg.HasMeasurementType(k.MeasurementType):
		return fmt.Sprintf("measurement type %q is not configured", k.MeasurementType)
	case !cfg.HasImplementation(k.Implementation):
		return fmt.Sprintf("implementation %q is not configured", k.Implementation)
	case !cfg.HasCategory(k.Category):
		return fmt.Sprintf("category %q is not configured", k.Category)
	}
	return ""
}

func source(r ir.Record) string {
	if r.Source != "" {
		return r.Source
	}
	return r.Key.String()
}

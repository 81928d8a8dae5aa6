package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/benchplot/internal/ir"
	"github.com/roach88/benchplot/internal/render"
	"github.com/roach88/benchplot/internal/scan"
)

// TableOptions holds flags for the table command.
type TableOptions struct {
	*RootOptions
	SkipInvalid bool
}

// GridResult is one grid with its digest.
type GridResult struct {
	*ir.Grid
	Digest string `json:"digest"`
}

// TableResult is the JSON payload of the table command.
type TableResult struct {
	Root     string       `json:"root"`
	Grids    []GridResult `json:"grids"`
	Warnings []scan.Issue `json:"warnings,omitempty"`
}

// NewTableCommand creates the table command.
func NewTableCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TableOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "table [root]",
		Short: "Print the aggregated grids without rendering",
		Long: `Scan and aggregate a result root exactly like render, then print each grid
as a table. Absent cells print as "-".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(opts, rootArg(args), cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.SkipInvalid, "skip-invalid", false, "skip malformed result directories with a warning")

	return cmd
}

func runTable(opts *TableOptions, root string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return configFailure(formatter, err)
	}

	mode := scan.ModeFailFast
	if opts.SkipInvalid {
		mode = scan.ModeLenient
	}
	outcome, errs := loadReport(cfg, root, mode, formatter)
	if len(errs) > 0 {
		return loadFailure(formatter, outcome, errs)
	}

	result := TableResult{Root: root, Grids: []GridResult{}, Warnings: outcome.Warnings}
	for _, g := range outcome.Report.Grids {
		digest, err := ir.GridDigest(g)
		if err != nil {
			return outputError(formatter, ExitFailure, ErrCodeGeneric, err.Error(), nil)
		}
		result.Grids = append(result.Grids, GridResult{Grid: g, Digest: digest})
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if len(result.Grids) == 0 {
		fmt.Fprintf(formatter.Writer, "No benchmark results found in %s\n", root)
		return nil
	}
	for i, g := range outcome.Report.Grids {
		if i > 0 {
			fmt.Fprintln(formatter.Writer)
		}
		printGrid(formatter.Writer, g)
	}
	return nil
}

// printGrid writes one grid as an aligned table titled like its chart.
func printGrid(w io.Writer, g *ir.Grid) {
	fmt.Fprintln(w, render.Title(g.MeasurementType))

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "CATEGORY\t%s\n", strings.ToUpper(strings.Join(g.Implementations, "\t")))
	for i, cat := range g.Categories {
		cells := make([]string, len(g.Implementations))
		for j := range g.Implementations {
			cells[j] = "-"
			if v, ok := g.At(i, j); ok {
				cells[j] = strconv.FormatFloat(v, 'f', 2, 64)
			}
		}
		fmt.Fprintf(tw, "%s\t%s\n", cat, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/benchplot/internal/render"
	"github.com/roach88/benchplot/internal/scan"
	"github.com/roach88/benchplot/internal/store"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	OutputDir   string
	Image       string
	SkipInvalid bool
	History     string
}

// RenderResult is the JSON payload of a render.
type RenderResult struct {
	Root     string          `json:"root"`
	Records  int             `json:"records"`
	Charts   []render.Output `json:"charts"`
	Warnings []scan.Issue    `json:"warnings,omitempty"`
	RunID    string          `json:"run_id,omitempty"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render [root]",
		Short: "Render one chart per measurement type",
		Long: `Scan a result root (default target/criterion), pivot the medians into a
category x implementation grid per measurement type and write one grouped
bar chart per grid.

A missing or empty root is not an error: nothing is written.
A malformed result directory aborts the run before any chart is written,
unless --skip-invalid is given.

Examples:
  benchplot render
  benchplot render target/criterion --out plots --image svg
  benchplot render --skip-invalid --history bench.db`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, rootArg(args), cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputDir, "out", "o", "", "output directory (default from config: plots)")
	cmd.Flags().StringVar(&opts.Image, "image", "", "image format: png, jpg, svg or html (default from config: png)")
	cmd.Flags().BoolVar(&opts.SkipInvalid, "skip-invalid", false, "skip malformed result directories with a warning")
	cmd.Flags().StringVar(&opts.History, "history", "", "record the run in this SQLite history database")

	return cmd
}

func runRender(opts *RenderOptions, root string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return configFailure(formatter, err)
	}
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}
	if opts.Image != "" {
		cfg.Image = strings.ToLower(strings.TrimSpace(opts.Image))
	}
	if err := cfg.Validate(); err != nil {
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

	result := RenderResult{
		Root:     root,
		Records:  len(outcome.Scan.Records),
		Charts:   []render.Output{},
		Warnings: outcome.Warnings,
	}

	if len(outcome.Report.Grids) == 0 {
		formatter.VerboseLog("No benchmark results in %s, nothing to render", root)
		return outputRenderResult(formatter, result, cfg.OutputDir)
	}

	charts, err := render.WriteAll(outcome.Report.Grids, cfg)
	if err != nil {
		return outputError(formatter, ExitCommandError, ErrCodeWriteFailed, err.Error(), nil)
	}
	result.Charts = charts

	if opts.History != "" {
		st, err := store.Open(opts.History)
		if err != nil {
			return outputError(formatter, ExitCommandError, ErrCodeHistory, fmt.Sprintf("failed to open history: %v", err), nil)
		}
		defer st.Close()

		summary, err := st.SaveRun(context.Background(), store.RunInput{
			Root:      root,
			Marker:    cfg.Marker,
			Statistic: cfg.Statistic,
			Records:   outcome.Scan.Records,
			Grids:     outcome.Report.Grids,
		})
		if err != nil {
			return outputError(formatter, ExitCommandError, ErrCodeHistory, err.Error(), nil)
		}
		formatter.VerboseLog("Recorded run %s (seq %d) in %s", summary.ID, summary.Seq, opts.History)
		result.RunID = summary.ID
	}

	return outputRenderResult(formatter, result, cfg.OutputDir)
}

func outputRenderResult(f *OutputFormatter, result RenderResult, outputDir string) error {
	if f.Format == "json" {
		return f.Success(result)
	}

	if len(result.Charts) == 0 {
		fmt.Fprintf(f.Writer, "No benchmark results found in %s\n", result.Root)
		return nil
	}

	fmt.Fprintf(f.Writer, "✓ Wrote %d chart(s) to %s\n", len(result.Charts), outputDir)
	for _, c := range result.Charts {
		fmt.Fprintf(f.Writer, "  %s (%d/%d cells)\n", c.Path, c.Present, c.Cells)
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintf(f.Writer, "  %d warning(s)\n", len(result.Warnings))
	}
	if result.RunID != "" {
		fmt.Fprintf(f.Writer, "  run %s\n", result.RunID)
	}
	return nil
}

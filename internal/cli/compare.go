package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/benchplot/internal/compare"
)

// CompareOptions holds flags for the compare command.
type CompareOptions struct {
	*RootOptions
	Database  string
	Threshold float64
}

// CompareResult is the JSON payload of the compare command.
type CompareResult struct {
	Base        string               `json:"base"`
	Head        string               `json:"head"`
	Threshold   float64              `json:"threshold"`
	Comparisons []compare.Comparison `json:"comparisons"`
	Summary     compare.Summary      `json:"summary"`
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompareOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compare <base-run> <head-run>",
		Short: "Compare the medians of two recorded runs",
		Long: `Compare every benchmark present in either of two runs recorded with
render --history. A change slower than --threshold percent is a regression
and makes the command exit with status 1.

Examples:
  benchplot compare 1 latest --db bench.db
  benchplot compare 1 2 --db bench.db --threshold 5`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite history database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().Float64Var(&opts.Threshold, "threshold", compare.DefaultThreshold, "percentage threshold for regressions")

	return cmd
}

func runCompare(opts *CompareOptions, baseRef, headRef string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	st, err := openHistory(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	base, err := st.LoadRun(ctx, baseRef)
	if err != nil {
		return runFailure(formatter, err)
	}
	head, err := st.LoadRun(ctx, headRef)
	if err != nil {
		return runFailure(formatter, err)
	}

	comparisons := compare.Compare(base.Records, head.Records, opts.Threshold)
	result := CompareResult{
		Base:        base.ID,
		Head:        head.ID,
		Threshold:   opts.Threshold,
		Comparisons: comparisons,
		Summary:     compare.Summarize(comparisons),
	}
	if result.Comparisons == nil {
		result.Comparisons = []compare.Comparison{}
	}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		printComparison(formatter, result)
	}

	if n := result.Summary.Regressions; n > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%s: %d regression(s) above %.1f%%", ErrCodeRegression, n, opts.Threshold))
	}
	return nil
}

func printComparison(f *OutputFormatter, result CompareResult) {
	fmt.Fprintf(f.Writer, "Comparing %s -> %s\n", result.Base, result.Head)

	w := tabwriter.NewWriter(f.Writer, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "BENCHMARK\tBASE NS\tHEAD NS\tDIFF %\tSTATUS")
	for _, c := range result.Comparisons {
		base, head, diff := "-", "-", "-"
		if c.Base != nil {
			base = fmt.Sprintf("%.2f", *c.Base)
		}
		if c.Head != nil {
			head = fmt.Sprintf("%.2f", *c.Head)
		}
		if c.Base != nil && c.Head != nil && c.Status != compare.StatusIncomparable {
			diff = fmt.Sprintf("%+.2f%%", c.Diff)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Key, base, head, diff, statusLabel(c.Status))
	}
	w.Flush()

	s := result.Summary
	fmt.Fprintf(f.Writer, "%d regression(s), %d improvement(s), %d unchanged, %d new, %d removed\n",
		s.Regressions, s.Improvements, s.Unchanged, s.New, s.Removed)
	if s.Incomparable > 0 {
		fmt.Fprintf(f.Writer, "%d change(s) from a zero base cannot be compared\n", s.Incomparable)
	}
}

func statusLabel(s compare.Status) string {
	switch s {
	case compare.StatusRegression:
		return "FAIL"
	case compare.StatusImprovement:
		return "IMPR"
	case compare.StatusNew:
		return "NEW"
	case compare.StatusRemoved:
		return "GONE"
	case compare.StatusIncomparable:
		return "N/A"
	}
	return "PASS"
}

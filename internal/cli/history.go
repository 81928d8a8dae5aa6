package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/benchplot/internal/store"
)

// HistoryOptions holds flags for the history commands.
type HistoryOptions struct {
	*RootOptions
	Database string
}

// NewHistoryCommand creates the history command and its list/show children.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect runs recorded with render --history",
		Long: `Inspect the runs recorded by render --history.

A run is referenced by its ID, its sequence number or "latest".

Examples:
  benchplot history list --db bench.db
  benchplot history show latest --db bench.db`,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite history database (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List recorded runs, oldest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(opts, cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "show <run>",
		Short:         "Show the grids of one run",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(opts, args[0], cmd)
		},
	})

	return cmd
}

// openHistory opens the database, reporting failures through the formatter.
func openHistory(f *OutputFormatter, path string) (*store.Store, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, outputError(f, ExitCommandError, ErrCodeHistory, fmt.Sprintf("failed to open history: %v", err), nil)
	}
	return st, nil
}

// runFailure maps a run lookup error to an exit error.
func runFailure(f *OutputFormatter, err error) error {
	if errors.Is(err, store.ErrRunNotFound) {
		return outputError(f, ExitCommandError, ErrCodeNotFound, err.Error(), nil)
	}
	return outputError(f, ExitCommandError, ErrCodeHistory, err.Error(), nil)
}

func runHistoryList(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	st, err := openHistory(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(context.Background())
	if err != nil {
		return runFailure(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(formatter.Writer, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SEQ\tID\tRECORDS\tDIGEST\tROOT")
	for _, r := range runs {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", r.Seq, r.ID, r.RecordCount, shortDigest(r.Digest), r.Root)
	}
	return w.Flush()
}

func runHistoryShow(opts *HistoryOptions, ref string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	st, err := openHistory(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.LoadRun(context.Background(), ref)
	if err != nil {
		return runFailure(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(run)
	}

	fmt.Fprintf(formatter.Writer, "Run %s (seq %d)\n", run.ID, run.Seq)
	fmt.Fprintf(formatter.Writer, "Root:   %s\n", run.Root)
	fmt.Fprintf(formatter.Writer, "Digest: %s\n", run.Digest)
	for _, g := range run.Grids {
		fmt.Fprintln(formatter.Writer)
		printGrid(formatter.Writer, g)
	}
	return nil
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/benchplot/internal/aggregate"
	"github.com/roach88/benchplot/internal/scan"
)

// Problem is one invalid result directory.
type Problem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool         `json:"valid"`
	Selected int          `json:"selected"`
	Records  int          `json:"records"`
	Problems []Problem    `json:"problems,omitempty"`
	Warnings []scan.Issue `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [root]",
		Short: "Check result directories without rendering",
		Long: `Check every result directory under a root (default target/criterion).

Reports every malformed directory name, missing or invalid result file and
duplicate benchmark instead of stopping at the first one. Records whose tags
are not configured are reported as warnings.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, rootArg(args), cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, root string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	cfg, err := loadConfig(opts)
	if err != nil {
		return configFailure(formatter, err)
	}

	scanner, err := scan.New(cfg)
	if err != nil {
		return outputError(formatter, ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	result, errs := scanner.Scan(root, scan.Options{Mode: scan.ModeCollectAll, Logf: formatter.VerboseLog})
	if result == nil {
		return loadFailure(formatter, nil, errs)
	}

	report := aggregate.Build(result.Records, cfg)
	vr := ValidationResult{
		Valid:    len(errs) == 0,
		Selected: result.Selected,
		Records:  len(result.Records),
		Warnings: report.Issues,
	}
	for _, err := range errs {
		vr.Problems = append(vr.Problems, Problem{Code: scan.Code(err), Message: err.Error()})
	}

	if len(vr.Problems) > 0 {
		return outputValidationProblems(formatter, vr)
	}
	return outputValidateSuccess(formatter, vr)
}

func outputValidateSuccess(f *OutputFormatter, vr ValidationResult) error {
	if f.Format == "json" {
		return f.Success(vr)
	}

	fmt.Fprintf(f.Writer, "✓ All result directories valid (%d record(s))\n", vr.Records)
	for _, w := range vr.Warnings {
		fmt.Fprintf(f.Writer, "  warning %s\n", w)
	}
	return nil
}

// outputValidationProblems outputs every problem found.
func outputValidationProblems(f *OutputFormatter, vr ValidationResult) error {
	if f.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   vr,
			Error: &CLIError{
				Code:    vr.Problems[0].Code,
				Message: vr.Problems[0].Message,
			},
		}

		encoder := json.NewEncoder(f.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d problem(s)", len(vr.Problems)))
	}

	// Text format
	fmt.Fprintln(f.Writer, "✗ Validation failed")
	fmt.Fprintln(f.Writer)

	for _, p := range vr.Problems {
		fmt.Fprintf(f.Writer, "  %s: %s\n", p.Code, p.Message)
	}
	for _, w := range vr.Warnings {
		fmt.Fprintf(f.Writer, "  warning %s\n", w)
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d problem(s)", len(vr.Problems)))
}

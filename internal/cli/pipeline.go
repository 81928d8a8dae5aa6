package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/benchplot/internal/aggregate"
	"github.com/roach88/benchplot/internal/config"
	"github.com/roach88/benchplot/internal/scan"
)

// loadOutcome is the shared result of scanning and aggregating a root.
type loadOutcome struct {
	Scan   *scan.Result
	Report *aggregate.Report
	// Warnings are skipped entries and excluded records.
	Warnings []scan.Issue
}

// loadReport scans root and aggregates the records.
//
// Problems with individual result directories come back as errs with a
// non-nil outcome. Problems with the root itself come back as errs with a
// nil outcome. Every warning is also reported through the formatter.
func loadReport(cfg *config.Config, root string, mode scan.Mode, f *OutputFormatter) (*loadOutcome, []error) {
	scanner, err := scan.New(cfg)
	if err != nil {
		return nil, []error{err}
	}

	result, errs := scanner.Scan(root, scan.Options{Mode: mode, Logf: f.VerboseLog})
	if result == nil {
		return nil, errs
	}
	if len(errs) > 0 {
		return &loadOutcome{Scan: result}, errs
	}

	f.VerboseLog("Selected %d result director(ies) in %s, read %d record(s)", result.Selected, root, len(result.Records))

	report := aggregate.Build(result.Records, cfg)
	out := &loadOutcome{Scan: result, Report: report}
	out.Warnings = append(out.Warnings, result.Issues...)
	out.Warnings = append(out.Warnings, report.Issues...)
	for _, issue := range out.Warnings {
		f.Warn("%s", issue)
	}
	return out, nil
}

// loadFailure reports the first load error and returns the matching exit
// error. Root problems are command errors; result directory problems are
// data failures.
func loadFailure(f *OutputFormatter, outcome *loadOutcome, errs []error) error {
	err := errs[0]
	if outcome == nil {
		code := scan.Code(err)
		if code == ErrCodeGeneric {
			code = ErrCodeScanError
		}
		return outputError(f, ExitCommandError, code, err.Error(), nil)
	}
	return outputError(f, ExitFailure, scan.Code(err), err.Error(), nil)
}

// outputError writes a single error and returns the exit error for it.
func outputError(f *OutputFormatter, exitCode int, code, message string, details interface{}) error {
	_ = f.Error(code, message, details)
	return NewExitError(exitCode, fmt.Sprintf("%s: %s", code, message))
}

// configFailure reports an unusable configuration.
func configFailure(f *OutputFormatter, err error) error {
	code := ErrCodeConfig
	if errors.Is(err, os.ErrNotExist) {
		code = ErrCodeNotFound
	}
	return outputError(f, ExitCommandError, code, err.Error(), nil)
}

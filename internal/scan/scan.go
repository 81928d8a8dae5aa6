package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/benchplot/internal/config"
	"github.com/roach88/benchplot/internal/ir"
	"github.com/roach88/benchplot/internal/schema"
)

// Mode controls how problems are handled during a scan.
type Mode int

const (
	// ModeFailFast stops on the first problem encountered.
	ModeFailFast Mode = iota
	// ModeLenient skips problematic entries and reports them as issues.
	ModeLenient
	// ModeCollectAll reports every problem as an error.
	ModeCollectAll
)

// Options tunes a scan.
type Options struct {
	Mode Mode
	// Logf receives per-entry diagnostics. May be nil.
	Logf func(format string, args ...any)
}

// Issue is a problem that did not abort the scan.
type Issue struct {
	Code    string `json:"code"`
	Dir     string `json:"dir"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Dir, i.Code, i.Message)
}

// Result holds the records of one scan.
type Result struct {
	Root string
	// Records are in directory-name order with unique keys.
	Records []ir.Record
	// Selected counts the entries carrying the marker prefix.
	Selected int
	// Issues are problems downgraded to warnings in ModeLenient.
	Issues []Issue
}

// Scanner reads result roots for one configuration.
type Scanner struct {
	cfg    *config.Config
	schema *schema.Schema
}

// New builds a scanner, compiling the result document schema for cfg.Statistic.
func New(cfg *config.Config) (*Scanner, error) {
	sch, err := schema.New(cfg.Statistic)
	if err != nil {
		return nil, err
	}
	return &Scanner{cfg: cfg, schema: sch}, nil
}

// Scan lists root and reads one record per selected entry.
//
// A root that does not exist yields an empty result and no error.
// In ModeFailFast the returned errors hold exactly the first problem and the
// result must be discarded.
func (s *Scanner) Scan(root string, opts Options) (*Result, []error) {
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	result := &Result{Root: root}

	info, err := os.Stat(root)
	if errors.Is(err, os.ErrNotExist) {
		logf("Result root %s does not exist, nothing to do", root)
		return result, nil
	}
	if err != nil {
		return nil, []error{fmt.Errorf("accessing result root: %w", err)}
	}
	if !info.IsDir() {
		return nil, []error{&NotDirectoryError{Path: root}}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, []error{fmt.Errorf("reading result root: %w", err)}
	}

	prefix := s.cfg.Marker + "_"
	var errs []error
	seen := make(map[ir.Key]int)

	// handle applies the mode to one problem and reports whether to stop.
	handle := func(dir string, err error) bool {
		switch opts.Mode {
		case ModeLenient:
			issue := Issue{Code: Code(err), Dir: dir, Message: err.Error()}
			result.Issues = append(result.Issues, issue)
			logf("Skipping %s: %v", dir, err)
			return false
		case ModeCollectAll:
			errs = append(errs, err)
			return false
		default:
			errs = append(errs, err)
			return true
		}
	}

	// os.ReadDir returns entries sorted by filename
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		result.Selected++
		dirPath := filepath.Join(root, name)

		// Stat follows symlinks so linked result directories are accepted
		if fi, err := os.Stat(dirPath); err != nil || !fi.IsDir() {
			if handle(name, &NotDirectoryError{Path: dirPath}) {
				return result, errs
			}
			continue
		}

		key, err := ParseName(s.cfg.Marker, name)
		if err != nil {
			if handle(name, err) {
				return result, errs
			}
			continue
		}

		value, err := s.schema.ReadFile(filepath.Join(dirPath, filepath.FromSlash(s.cfg.ResultFile)))
		if err != nil {
			if handle(name, err) {
				return result, errs
			}
			continue
		}

		record := ir.Record{Key: key, Value: value, Source: name}
		if idx, dup := seen[key]; dup {
			dupErr := &DuplicateError{Key: key.String(), First: result.Records[idx].Source, Second: name}
			stop := handle(name, dupErr)
			// The later directory replaces the earlier one.
			result.Records[idx] = record
			if stop {
				return result, errs
			}
			continue
		}

		logf("Read %s = %g ns from %s", key, value, name)
		seen[key] = len(result.Records)
		result.Records = append(result.Records, record)
	}

	return result, errs
}

// Code returns the error code carried by a scan or schema error, or "E001"
// when it carries none.
func Code(err error) string {
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	var re *schema.ResultError
	if errors.As(err, &re) {
		return re.Code
	}
	return "E001"
}

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// Tree is a result root on disk, laid out like target/criterion.
type Tree struct {
	t    testing.TB
	Root string
}

// NewTree creates an empty result root inside t.TempDir().
func NewTree(t testing.TB) *Tree {
	t.Helper()
	root := filepath.Join(t.TempDir(), "criterion")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatalf("creating result root: %v", err)
	}
	return &Tree{t: t, Root: root}
}

// EstimatesJSON returns a harness estimates document whose median point
// estimate is median.
func EstimatesJSON(median float64) string {
	m := strconv.FormatFloat(median, 'g', -1, 64)
	return fmt.Sprintf(`{
  "mean": {"confidence_interval": {"confidence_level": 0.95, "lower_bound": %[1]s, "upper_bound": %[1]s}, "point_estimate": %[1]s, "standard_error": 0.5},
  "median": {"confidence_interval": {"confidence_level": 0.95, "lower_bound": %[1]s, "upper_bound": %[1]s}, "point_estimate": %[1]s, "standard_error": 0.5},
  "median_abs_dev": {"confidence_interval": {"confidence_level": 0.95, "lower_bound": 0, "upper_bound": 1}, "point_estimate": 0.5, "standard_error": 0.1},
  "slope": null,
  "std_dev": {"confidence_interval": {"confidence_level": 0.95, "lower_bound": 0, "upper_bound": 2}, "point_estimate": 1, "standard_error": 0.2}
}
`, m)
}

// Add writes <root>/<dir>/new/estimates.json with the given median and
// returns the directory path.
func (tr *Tree) Add(dir string, median float64) string {
	tr.t.Helper()
	return tr.AddRaw(dir, EstimatesJSON(median))
}

// AddRaw writes arbitrary content as the result file of dir.
func (tr *Tree) AddRaw(dir, content string) string {
	tr.t.Helper()
	return tr.AddFile(dir, filepath.Join("new", "estimates.json"), content)
}

// AddFile writes content at rel inside dir.
func (tr *Tree) AddFile(dir, rel, content string) string {
	tr.t.Helper()
	full := filepath.Join(tr.Root, dir)
	path := filepath.Join(full, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		tr.t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		tr.t.Fatalf("writing %s: %v", path, err)
	}
	return full
}

// AddDir creates dir with no result file.
func (tr *Tree) AddDir(dir string) string {
	tr.t.Helper()
	full := filepath.Join(tr.Root, dir)
	if err := os.MkdirAll(full, 0755); err != nil {
		tr.t.Fatalf("creating %s: %v", full, err)
	}
	return full
}

// Name builds a `<marker>_<type>_<impl>_<category>` directory name.
func Name(marker, measurementType, implementation, category string) string {
	return fmt.Sprintf("%s_%s_%s_%s", marker, measurementType, implementation, category)
}

// AddMatrix writes one result per (type, implementation, category)
// combination. value computes the median for each.
func (tr *Tree) AddMatrix(marker string, types, implementations, categories []string, value func(mt, impl, cat string) float64) int {
	tr.t.Helper()
	n := 0
	for _, mt := range types {
		for _, impl := range implementations {
			for _, cat := range categories {
				tr.Add(Name(marker, mt, impl, cat), value(mt, impl, cat))
				n++
			}
		}
	}
	return n
}

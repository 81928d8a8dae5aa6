// Package compare diffs the medians of two stored runs.
package compare

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/roach88/benchplot/internal/ir"
)

// DefaultThreshold is the percent change beyond which a cell counts as a
// regression or improvement.
const DefaultThreshold = 10.0

// Status classifies one comparison.
type Status string

const (
	StatusUnchanged   Status = "unchanged"
	StatusRegression  Status = "regression"
	StatusImprovement Status = "improvement"
	StatusNew         Status = "new"
	StatusRemoved     Status = "removed"

	// StatusIncomparable marks a change away from a zero base, which has no
	// percent difference.
	StatusIncomparable Status = "incomparable"
)

// Comparison is the change of one benchmark between two runs.
type Comparison struct {
	ir.Key
	Base *float64 `json:"base"`
	Head *float64 `json:"head"`
	// Diff is the percent change from base to head. Positive is slower.
	Diff   float64 `json:"diff"`
	Status Status  `json:"status"`
}

func (c Comparison) String() string {
	switch c.Status {
	case StatusNew:
		return fmt.Sprintf("%s: new, %g ns", c.Key, *c.Head)
	case StatusRemoved:
		return fmt.Sprintf("%s: removed, was %g ns", c.Key, *c.Base)
	case StatusIncomparable:
		return fmt.Sprintf("%s: %g -> %g ns (incomparable)", c.Key, *c.Base, *c.Head)
	}
	return fmt.Sprintf("%s: %+.2f%% (%s)", c.Key, c.Diff, c.Status)
}

// Compare matches records by key and classifies each change against
// threshold. Results are ordered by measurement type, implementation and
// category.
func Compare(base, head []ir.Record, threshold float64) []Comparison {
	baseMap := make(map[ir.Key]float64, len(base))
	for _, r := range base {
		baseMap[r.Key] = r.Value
	}
	headMap := make(map[ir.Key]float64, len(head))
	for _, r := range head {
		headMap[r.Key] = r.Value
	}

	var comparisons []Comparison
	for key, h := range headMap {
		h := h
		c := Comparison{Key: key, Head: &h}
		b, ok := baseMap[key]
		if !ok {
			c.Status = StatusNew
			comparisons = append(comparisons, c)
			continue
		}
		c.Base = &b
		if b <= 0 {
			c.Status = StatusUnchanged
			if h != b {
				c.Status = StatusIncomparable
			}
			comparisons = append(comparisons, c)
			continue
		}
		c.Diff = (h - b) / b * 100
		switch {
		case c.Diff > threshold:
			c.Status = StatusRegression
		case c.Diff < -threshold:
			c.Status = StatusImprovement
		default:
			c.Status = StatusUnchanged
		}
		comparisons = append(comparisons, c)
	}
	for key, b := range baseMap {
		if _, ok := headMap[key]; ok {
			continue
		}
		b := b
		comparisons = append(comparisons, Comparison{Key: key, Base: &b, Status: StatusRemoved})
	}

	slices.SortFunc(comparisons, func(a, b Comparison) int {
		return cmp.Or(
			cmp.Compare(a.MeasurementType, b.MeasurementType),
			cmp.Compare(a.Implementation, b.Implementation),
			cmp.Compare(a.Category, b.Category),
		)
	})
	return comparisons
}

// Summary counts comparisons per status.
type Summary struct {
	Regressions  int `json:"regressions"`
	Improvements int `json:"improvements"`
	Unchanged    int `json:"unchanged"`
	New          int `json:"new"`
	Removed      int `json:"removed"`
	Incomparable int `json:"incomparable"`
}

// Summarize tallies cs.
func Summarize(cs []Comparison) Summary {
	var s Summary
	for _, c := range cs {
		switch c.Status {
		case StatusRegression:
			s.Regressions++
		case StatusImprovement:
			s.Improvements++
		case StatusUnchanged:
			s.Unchanged++
		case StatusNew:
			s.New++
		case StatusRemoved:
			s.Removed++
		case StatusIncomparable:
			s.Incomparable++
		}
	}
	return s
}

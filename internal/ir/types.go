package ir

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Key identifies one benchmark within a result tree.
type Key struct {
	MeasurementType string `json:"measurement_type"`
	Implementation  string `json:"implementation"`
	Category        string `json:"category"`
}

// String renders the key the way the harness names the benchmark.
func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.MeasurementType, k.Implementation, k.Category)
}

// Record is a single median measurement read from one result directory.
type Record struct {
	Key
	// Value is the median point estimate in nanoseconds.
	Value float64 `json:"value"`
	// Source is the directory the record was read from.
	Source string `json:"source,omitempty"`
}

// NewRecord builds a record with normalised tags.
func NewRecord(measurementType, implementation, category string, value float64) Record {
	return Record{
		Key: Key{
			MeasurementType: NormalizeTag(measurementType),
			Implementation:  NormalizeTag(implementation),
			Category:        NormalizeTag(category),
		},
		Value: value,
	}
}

// NormalizeTag trims surrounding space and applies Unicode NFC so that tags
// read from decomposed file names compare equal to configured tags.
func NormalizeTag(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

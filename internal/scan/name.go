package scan

import (
	"fmt"
	"strings"

	"github.com/roach88/benchplot/internal/ir"
)

// NameSegments is the number of underscore-delimited segments in a result
// directory name.
const NameSegments = 4

// ParseName splits a result directory name into its key.
// The marker segment must match exactly; the other segments are NFC-normalised.
func ParseName(marker, name string) (ir.Key, error) {
	parts := strings.Split(name, "_")
	if len(parts) != NameSegments {
		return ir.Key{}, &NameError{
			Dir: name,
			Message: fmt.Sprintf("expected %d underscore-delimited segments <marker>_<type>_<implementation>_<category>, found %d",
				NameSegments, len(parts)),
		}
	}
	if parts[0] != marker {
		return ir.Key{}, &NameError{
			Dir:     name,
			Message: fmt.Sprintf("marker %q does not match %q", parts[0], marker),
		}
	}

	labels := []string{"measurement type", "implementation", "category"}
	for i, part := range parts[1:] {
		if ir.NormalizeTag(part) == "" {
			return ir.Key{}, &NameError{
				Dir:     name,
				Message: fmt.Sprintf("%s segment is empty", labels[i]),
			}
		}
	}

	return ir.Key{
		MeasurementType: ir.NormalizeTag(parts[1]),
		Implementation:  ir.NormalizeTag(parts[2]),
		Category:        ir.NormalizeTag(parts[3]),
	}, nil
}

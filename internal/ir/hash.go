package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content digests.
// Version suffix enables future algorithm migration.
const (
	DomainGrid = "benchplot/grid/v1"
	DomainRun  = "benchplot/run/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// GridDigest fingerprints a grid. Two grids with the same tags and cell values
// always share a digest; rendering the same grid yields the same chart.
func GridDigest(g *Grid) (string, error) {
	canonical, err := MarshalCanonical(g)
	if err != nil {
		return "", fmt.Errorf("GridDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainGrid, canonical), nil
}

// RunDigest fingerprints an ordered set of grids.
func RunDigest(grids []*Grid) (string, error) {
	parts := make([]any, len(grids))
	for i, g := range grids {
		d, err := GridDigest(g)
		if err != nil {
			return "", fmt.Errorf("RunDigest: grid %q: %w", g.MeasurementType, err)
		}
		parts[i] = d
	}
	canonical, err := MarshalCanonical(parts)
	if err != nil {
		return "", fmt.Errorf("RunDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainRun, canonical), nil
}

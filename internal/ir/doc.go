// Package ir holds the in-memory representation shared by every stage of the
// report pipeline: benchmark records, the category × implementation grid and
// the deterministic encodings used to fingerprint them.
//
// ir imports nothing internal. Scanning, aggregation, rendering and the
// history store all build on these types.
//
// Key constraints:
//   - Tags are NFC-normalised before they are compared or stored
//   - Absent grid cells are nil, never zero
//   - All JSON tags use snake_case
package ir

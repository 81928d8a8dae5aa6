// Package schema validates benchmark result documents and extracts the
// charted statistic from them.
//
// Result documents are parsed with CUE's JSON decoder so that every problem
// carries a file position. The document is unified with an embedded schema
// (estimates.cue) describing the harness output, then the configured
// statistic path is looked up and constrained to a non-negative number.
//
// # Error Codes
//
//   - E301: result file missing or unreadable
//   - E302: result file is not valid JSON
//   - E303: result file violates the estimates schema
//   - E304: statistic path absent or not a non-negative number
package schema

// Package testutil builds result trees shaped like the benchmark harness
// output and supplies deterministic run IDs for tests.
package testutil

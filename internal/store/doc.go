// Package store provides SQLite-backed history of render runs.
//
// Each saved run keeps:
//   - Runs: ID (UUIDv7), logical sequence number, result root and run digest
//   - Records: every median read during the run
//   - Grids: the canonical JSON and digest of each aggregated grid
//
// # Ordering
//
// Runs are ordered by seq, a logical counter assigned on save, never by
// wall time. Listing queries use ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Grid and run digests come from internal/ir/hash.go.
package store

package testutil

import "sync"

// FixedIDs returns predetermined run IDs in order.
//
// Example:
//
//	ids := NewFixedIDs("run-1", "run-2")
//	ids.Generate() // "run-1"
//	ids.Generate() // "run-2"
//	ids.Generate() // panic: all IDs exhausted
//
// Thread-safety: FixedIDs is safe for concurrent use via internal mutex.
type FixedIDs struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDs creates a generator that returns ids in order.
func NewFixedIDs(ids ...string) *FixedIDs {
	return &FixedIDs{ids: ids}
}

// Generate returns the next predetermined ID.
//
// Panics if all IDs have been consumed. This catches tests that save more
// runs than they declared.
func (g *FixedIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedIDs: all IDs exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

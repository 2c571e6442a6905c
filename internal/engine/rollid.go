package engine

import (
	"sync"

	"github.com/google/uuid"
)

// RollIDGenerator generates identifiers that tag one evaluation in logs
// and JSON output. Implemented by UUIDv7Generator and FixedGenerator.
type RollIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 roll ids.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined roll ids, for tests and golden
// output.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined id.
//
// Panics if all ids have been consumed.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all roll ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

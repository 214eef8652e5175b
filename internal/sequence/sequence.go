// Package sequence issues unique, monotonic, human-readable journal entry
// numbers per (tenant, year).
package sequence

import (
	"context"
	"fmt"
)

// CounterStore persists per-tenant counters. Increment must be a single
// atomic increment-and-fetch against key, never a read followed by a write,
// so N concurrent calls observe exactly N distinct, strictly increasing values.
type CounterStore interface {
	Increment(ctx context.Context, tenantID, key string) (int64, error)
}

// Generator issues journal entry sequence numbers.
type Generator struct {
	counters CounterStore
}

// NewGenerator creates a sequence generator backed by a counter store.
func NewGenerator(counters CounterStore) *Generator {
	return &Generator{counters: counters}
}

// Key returns the counter key for a journal year.
func Key(year int) string {
	return fmt.Sprintf("journal-%d", year)
}

// Next atomically increments and returns the journal counter for the
// tenant's year. Storage errors propagate to the caller; there is no
// other failure mode.
func (g *Generator) Next(ctx context.Context, tenantID string, year int) (int64, error) {
	seq, err := g.counters.Increment(ctx, tenantID, Key(year))
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter %s: %w", Key(year), err)
	}
	return seq, nil
}

// Number formats a sequence number as the human-readable entry number,
// e.g. (2026, 7) -> "2026-0007".
func Number(year int, seq int64) string {
	return fmt.Sprintf("%d-%04d", year, seq)
}

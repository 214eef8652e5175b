package journal

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Totals is the aggregated debit/credit pair for one account code.
type Totals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// EntryStore persists journal entries. Entries are create-only: no store
// implementation exposes an update or delete path. Create failures are
// surfaced to the caller and never retried internally, so a posting is
// never silently duplicated.
type EntryStore interface {
	// Create persists the entry and its lines as a single atomic create.
	Create(ctx context.Context, entry *Entry) error

	GetByID(ctx context.Context, tenantID, entryID string) (*Entry, error)

	// GetBySource returns the first entry recorded for a
	// (source tag, source ID) pair.
	GetBySource(ctx context.Context, tenantID, sourceTag, sourceID string) (*Entry, error)

	// SumBefore aggregates line totals per account code over entries dated
	// strictly before the cutoff. An empty codes slice means all accounts.
	SumBefore(ctx context.Context, tenantID string, codes []string, before time.Time) (map[string]Totals, error)

	// SumRange aggregates line totals per account code over entries dated
	// within [start, end] inclusive. An empty codes slice means all accounts.
	SumRange(ctx context.Context, tenantID string, codes []string, start, end time.Time) (map[string]Totals, error)
}

package journal

import (
	"context"
	"time"

	"github.com/example/ledger-core/internal/accounts"
	"github.com/example/ledger-core/pkg/audit"
)

// AccountResolver resolves tagged account references against a tenant's
// chart of accounts.
type AccountResolver interface {
	Resolve(ctx context.Context, tenantID string, ref accounts.Ref) (*accounts.Account, error)
}

// Sequencer issues the next entry sequence number for a (tenant, year).
type Sequencer interface {
	Next(ctx context.Context, tenantID string, year int) (int64, error)
}

// Service is the posting and reporting core: it validates and persists
// balanced entries, builds reversal entries and aggregates balances.
// It never mutates the originating business record; that remains the
// caller's responsibility.
type Service struct {
	entries   EntryStore
	accounts  AccountResolver
	sequences Sequencer
	chain     *audit.Chain
	now       func() time.Time
}

// NewService creates the journal service. chain may be nil to disable the
// audit trail.
func NewService(entries EntryStore, resolver AccountResolver, sequences Sequencer, chain *audit.Chain) *Service {
	return &Service{
		entries:   entries,
		accounts:  resolver,
		sequences: sequences,
		chain:     chain,
		now:       time.Now,
	}
}

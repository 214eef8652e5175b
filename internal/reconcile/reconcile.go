// Package reconcile detects inventory movements whose ledger entry never
// materialized. Movement creation and entry posting are separate writes, so
// a crash between them leaves an active movement with no linked entry. The
// scanner reports those; it never repairs them.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/example/ledger-core/internal/inventory"
)

// MovementSource is the slice of the movement store the scanner reads.
type MovementSource interface {
	ListUnlinked(ctx context.Context, tenantID string, before time.Time) ([]*inventory.Movement, error)
}

// Orphan is an active movement that should have a journal entry but has
// none linked.
type Orphan struct {
	MovementID string                 `json:"movement_id"`
	ProductID  string                 `json:"product_id"`
	Type       inventory.MovementType `json:"type"`
	CreatedAt  time.Time              `json:"created_at"`
	Age        time.Duration          `json:"age"`
}

// Scanner finds orphaned movements.
type Scanner struct {
	movements MovementSource
	grace     time.Duration
	now       func() time.Time
}

// DefaultGrace is how long a movement may sit unlinked before it counts as
// orphaned. Posting and linking normally complete well within it.
const DefaultGrace = 5 * time.Minute

// NewScanner creates a scanner over the movement store. A non-positive
// grace falls back to DefaultGrace.
func NewScanner(movements MovementSource, grace time.Duration) *Scanner {
	if grace <= 0 {
		grace = DefaultGrace
	}
	return &Scanner{movements: movements, grace: grace, now: time.Now}
}

// Orphans returns the movements older than the grace window that have no
// linked journal entry, oldest first.
func (s *Scanner) Orphans(ctx context.Context, tenantID string) ([]Orphan, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant ID is required")
	}

	now := s.now().UTC()
	movements, err := s.movements.ListUnlinked(ctx, tenantID, now.Add(-s.grace))
	if err != nil {
		return nil, fmt.Errorf("failed to list unlinked movements: %w", err)
	}

	orphans := make([]Orphan, 0, len(movements))
	for _, m := range movements {
		orphans = append(orphans, Orphan{
			MovementID: m.ID,
			ProductID:  m.ProductID,
			Type:       m.Type,
			CreatedAt:  m.CreatedAt,
			Age:        now.Sub(m.CreatedAt),
		})
	}
	return orphans, nil
}

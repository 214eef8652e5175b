package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrMovementNotFound is returned when no movement matches a lookup.
	ErrMovementNotFound = errors.New("movement not found")
	// ErrMovementCanceled is returned when a cancellation hits a movement
	// that is already canceled. The transition is terminal.
	ErrMovementCanceled = errors.New("movement already canceled")
)

// MovementStore persists inventory movements. MarkCanceled must be an
// atomic active->canceled transition so concurrent cancellations of the
// same movement cannot both succeed.
type MovementStore interface {
	Create(ctx context.Context, m *Movement) error
	Get(ctx context.Context, tenantID, id string) (*Movement, error)

	// LinkEntry records the journal entry a movement produced.
	LinkEntry(ctx context.Context, tenantID, id, entryID string) error

	// MarkCanceled flips status active->canceled. Returns
	// ErrMovementCanceled if the movement is already canceled.
	MarkCanceled(ctx context.Context, tenantID, id string) error

	ListByProduct(ctx context.Context, tenantID, productID string) ([]*Movement, error)

	// ListUnlinked returns active movements without a journal entry created
	// before the cutoff: the residue of a crash between the movement create
	// and the ledger posting.
	ListUnlinked(ctx context.Context, tenantID string, before time.Time) ([]*Movement, error)
}

// ProductCatalog looks up product master data owned outside the core.
type ProductCatalog interface {
	// PurchaseCost returns the registered purchase cost of a product.
	PurchaseCost(ctx context.Context, tenantID, productID string) (decimal.Decimal, error)
}

package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ledger-core/internal/inventory"
)

const tenant = "t1"

func seedMovement(t *testing.T, store *inventory.MemoryMovementStore, id string, createdAt time.Time, entryID string) {
	t.Helper()
	err := store.Create(context.Background(), &inventory.Movement{
		ID:        id,
		TenantID:  tenant,
		Date:      createdAt,
		Type:      inventory.TypeInbound,
		ProductID: "widget",
		Quantity:  decimal.NewFromInt(10),
		UnitCost:  decimal.NewFromInt(5),
		TotalCost: decimal.NewFromInt(50),
		Status:    inventory.StatusActive,
		EntryID:   entryID,
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
}

func TestOrphans(t *testing.T) {
	ctx := context.Background()
	store := inventory.NewMemoryMovementStore()
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	seedMovement(t, store, "old-unlinked", now.Add(-time.Hour), "")
	seedMovement(t, store, "old-linked", now.Add(-time.Hour), "entry-1")
	seedMovement(t, store, "fresh-unlinked", now.Add(-time.Minute), "")

	scanner := NewScanner(store, DefaultGrace)
	scanner.now = func() time.Time { return now }

	orphans, err := scanner.Orphans(ctx, tenant)
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, "old-unlinked", orphans[0].MovementID)
	assert.Equal(t, "widget", orphans[0].ProductID)
	assert.Equal(t, time.Hour, orphans[0].Age)
}

func TestOrphansEmpty(t *testing.T) {
	scanner := NewScanner(inventory.NewMemoryMovementStore(), 0)
	orphans, err := scanner.Orphans(context.Background(), tenant)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestOrphansRequiresTenant(t *testing.T) {
	scanner := NewScanner(inventory.NewMemoryMovementStore(), 0)
	_, err := scanner.Orphans(context.Background(), "")
	assert.Error(t, err)
}

package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *SQLiteMovementStore {
	t.Helper()
	store, err := NewSQLiteMovementStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testMovement(id, productID string, mt MovementType, qty string) *Movement {
	return &Movement{
		ID:        id,
		TenantID:  tenant,
		Date:      time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Type:      mt,
		ProductID: productID,
		Quantity:  amount(qty),
		UnitCost:  amount("5"),
		TotalCost: amount("5").Mul(amount(qty)),
		Status:    StatusActive,
		CreatedAt: time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteCreateGet(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	m := testMovement("mv-1", "widget", TypeInbound, "10")
	require.NoError(t, store.Create(ctx, m))

	got, err := store.Get(ctx, tenant, "mv-1")
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, TypeInbound, got.Type)
	assert.Equal(t, StatusActive, got.Status)
	assert.True(t, got.Quantity.Equal(amount("10")))
	assert.True(t, got.UnitCost.Equal(amount("5")))
	assert.True(t, got.TotalCost.Equal(amount("50")))

	_, err = store.Get(ctx, tenant, "missing")
	assert.ErrorIs(t, err, ErrMovementNotFound)

	_, err = store.Get(ctx, "other-tenant", "mv-1")
	assert.ErrorIs(t, err, ErrMovementNotFound)
}

func TestSQLiteDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	require.NoError(t, store.Create(ctx, testMovement("mv-1", "widget", TypeInbound, "10")))
	assert.Error(t, store.Create(ctx, testMovement("mv-1", "widget", TypeInbound, "10")))

	// Same ID under a different tenant is a distinct row.
	other := testMovement("mv-1", "widget", TypeInbound, "10")
	other.TenantID = "t2"
	assert.NoError(t, store.Create(ctx, other))
}

func TestSQLiteLinkEntry(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	require.NoError(t, store.Create(ctx, testMovement("mv-1", "widget", TypeInbound, "10")))
	require.NoError(t, store.LinkEntry(ctx, tenant, "mv-1", "entry-1"))

	got, err := store.Get(ctx, tenant, "mv-1")
	require.NoError(t, err)
	assert.Equal(t, "entry-1", got.EntryID)

	assert.ErrorIs(t, store.LinkEntry(ctx, tenant, "missing", "entry-2"), ErrMovementNotFound)
}

func TestSQLiteMarkCanceled(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	require.NoError(t, store.Create(ctx, testMovement("mv-1", "widget", TypeInbound, "10")))
	require.NoError(t, store.MarkCanceled(ctx, tenant, "mv-1"))

	got, err := store.Get(ctx, tenant, "mv-1")
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, got.Status)

	// The transition is terminal: a second flip fails.
	assert.ErrorIs(t, store.MarkCanceled(ctx, tenant, "mv-1"), ErrMovementCanceled)
	assert.ErrorIs(t, store.MarkCanceled(ctx, tenant, "missing"), ErrMovementNotFound)
}

func TestSQLiteListByProduct(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	first := testMovement("mv-1", "widget", TypeInbound, "10")
	second := testMovement("mv-2", "widget", TypeOutbound, "4")
	second.Date = first.Date.AddDate(0, 0, 1)
	other := testMovement("mv-3", "gizmo", TypeInbound, "2")

	require.NoError(t, store.Create(ctx, first))
	require.NoError(t, store.Create(ctx, second))
	require.NoError(t, store.Create(ctx, other))

	got, err := store.ListByProduct(ctx, tenant, "widget")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "mv-1", got[0].ID)
	assert.Equal(t, "mv-2", got[1].ID)
}

func TestSQLiteListUnlinked(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	unlinked := testMovement("mv-1", "widget", TypeInbound, "10")
	linked := testMovement("mv-2", "widget", TypeInbound, "10")
	adjustment := testMovement("mv-3", "widget", TypeAdjustment, "1")
	recent := testMovement("mv-4", "widget", TypeInbound, "10")
	recent.CreatedAt = time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	for _, m := range []*Movement{unlinked, linked, adjustment, recent} {
		require.NoError(t, store.Create(ctx, m))
	}
	require.NoError(t, store.LinkEntry(ctx, tenant, "mv-2", "entry-2"))

	cutoff := time.Date(2026, 4, 1, 13, 0, 0, 0, time.UTC)
	got, err := store.ListUnlinked(ctx, tenant, cutoff)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mv-1", got[0].ID)
}

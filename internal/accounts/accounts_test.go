package accounts

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNatureOf(t *testing.T) {
	tests := []struct {
		code string
		want Nature
	}{
		{"1101", NatureDebit},
		{"1201", NatureDebit},
		{"5101", NatureDebit},
		{"6201", NatureDebit},
		{"2101", NatureCredit},
		{"3101", NatureCredit},
		{"4001", NatureCredit},
		{"9101", NatureDebit}, // memo range falls back to debit-natural
		{"", NatureDebit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NatureOf(tt.code), "code %q", tt.code)
	}
}

func TestNatureBalance(t *testing.T) {
	debit := decimal.NewFromInt(200)
	credit := decimal.NewFromInt(50)

	assert.True(t, NatureDebit.Balance(debit, credit).Equal(decimal.NewFromInt(150)))
	assert.True(t, NatureCredit.Balance(debit, credit).Equal(decimal.NewFromInt(-150)))
}

func TestRef(t *testing.T) {
	assert.True(t, Ref{}.IsZero())
	assert.Equal(t, "1101", ByCode("1101").Code())
	assert.Equal(t, "abc", ByID("abc").ID())
	assert.Equal(t, "code:1101", ByCode("1101").String())
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())

	account, err := svc.Create(ctx, CreateAccountRequest{
		TenantID: "t1",
		Code:     "1101",
		Name:     "Cash",
		Type:     TypeAsset,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, account.ID)
	assert.True(t, account.Active)

	// (tenant, code) is unique.
	_, err = svc.Create(ctx, CreateAccountRequest{
		TenantID: "t1",
		Code:     "1101",
		Name:     "Cash again",
		Type:     TypeAsset,
	})
	require.ErrorIs(t, err, ErrDuplicateCode)

	// Same code in another tenant is fine.
	_, err = svc.Create(ctx, CreateAccountRequest{
		TenantID: "t2",
		Code:     "1101",
		Name:     "Cash",
		Type:     TypeAsset,
	})
	require.NoError(t, err)
}

func TestServiceCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())

	_, err := svc.Create(ctx, CreateAccountRequest{TenantID: "t1", Code: "1101", Name: "Cash", Type: "bogus"})
	assert.Error(t, err)

	_, err = svc.Create(ctx, CreateAccountRequest{TenantID: "t1", Name: "Cash", Type: TypeAsset})
	assert.Error(t, err)

	_, err = svc.Create(ctx, CreateAccountRequest{
		TenantID: "t1", Code: "1102", Name: "Sub", Type: TypeAsset, ParentCode: "9999",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceSeed(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())

	require.NoError(t, svc.Seed(ctx, "t1"))

	chart, err := svc.List(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, chart, len(DefaultChart()))
	assert.Equal(t, "1101", chart[0].Code)

	// Seeding is idempotent.
	require.NoError(t, svc.Seed(ctx, "t1"))
	chart, err = svc.List(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, chart, len(DefaultChart()))
}

func TestServiceResolve(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())
	require.NoError(t, svc.Seed(ctx, "t1"))

	byCode, err := svc.Resolve(ctx, "t1", ByCode("1201"))
	require.NoError(t, err)
	assert.Equal(t, "Inventory", byCode.Name)

	byID, err := svc.Resolve(ctx, "t1", ByID(byCode.ID))
	require.NoError(t, err)
	assert.Equal(t, byCode.Code, byID.Code)

	_, err = svc.Resolve(ctx, "t1", ByCode("0000"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Resolve(ctx, "t1", Ref{})
	assert.ErrorIs(t, err, ErrNotFound)

	// Tenant scoping: t2 has no chart.
	_, err = svc.Resolve(ctx, "t2", ByCode("1201"))
	assert.ErrorIs(t, err, ErrNotFound)
}

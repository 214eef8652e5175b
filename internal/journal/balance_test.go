package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ledger-core/internal/accounts"
)

// seedLines posts a balanced pair against (debitCode, creditCode) dated day.
func seedLines(t *testing.T, svc *Service, day time.Time, debitCode, creditCode, total string) {
	t.Helper()
	_, err := svc.Post(context.Background(), tenant, PostInput{
		Date:      day,
		Concept:   "seed",
		SourceTag: "test",
		SourceID:  "seed-" + day.Format("20060102") + debitCode + creditCode + total,
		Lines: []LineInput{
			{Account: accounts.ByCode(debitCode), Debit: amount(total)},
			{Account: accounts.ByCode(creditCode), Credit: amount(total)},
		},
	})
	require.NoError(t, err)
}

func TestBalancesCreditNaturalIncome(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	// Income account 4101: opening 0, period credit 1000 -> closing 1000.
	seedLines(t, svc, date(2026, 2, 10), "1101", "4101", "1000")

	balances, err := svc.Balances(ctx, tenant, []string{"4101"}, date(2026, 2, 1), date(2026, 2, 28))
	require.NoError(t, err)

	b, ok := balances["4101"]
	require.True(t, ok)
	assert.True(t, b.Opening.IsZero())
	assert.True(t, b.PeriodDebit.IsZero())
	assert.True(t, b.PeriodCredit.Equal(amount("1000")))
	assert.True(t, b.Closing.Equal(amount("1000")))
}

func TestBalancesDebitNaturalAsset(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	// Asset account 1101: opening 500, then period debit 200 and credit 50
	// -> closing 650.
	seedLines(t, svc, date(2026, 1, 10), "1101", "4101", "500")
	seedLines(t, svc, date(2026, 2, 5), "1101", "4101", "200")
	seedLines(t, svc, date(2026, 2, 6), "6101", "1101", "50")

	balances, err := svc.Balances(ctx, tenant, []string{"1101"}, date(2026, 2, 1), date(2026, 2, 28))
	require.NoError(t, err)

	b := balances["1101"]
	assert.True(t, b.Opening.Equal(amount("500")), "opening %s", b.Opening)
	assert.True(t, b.PeriodDebit.Equal(amount("200")))
	assert.True(t, b.PeriodCredit.Equal(amount("50")))
	assert.True(t, b.Closing.Equal(amount("650")), "closing %s", b.Closing)
}

func TestBalancesUnionOfSets(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	// 1102 only has history before the window; 4101 only activity inside it.
	seedLines(t, svc, date(2026, 1, 10), "1102", "3101", "300")
	seedLines(t, svc, date(2026, 2, 10), "1101", "4101", "100")

	balances, err := svc.Balances(ctx, tenant, nil, date(2026, 2, 1), date(2026, 2, 28))
	require.NoError(t, err)

	// Opening-only account is reported with its balance carried forward.
	b, ok := balances["1102"]
	require.True(t, ok)
	assert.True(t, b.Opening.Equal(amount("300")))
	assert.True(t, b.PeriodDebit.IsZero())
	assert.True(t, b.Closing.Equal(amount("300")))

	// Period-only account is reported with a zero opening.
	b, ok = balances["4101"]
	require.True(t, ok)
	assert.True(t, b.Opening.IsZero())
	assert.True(t, b.Closing.Equal(amount("100")))

	// Opening-only credit-natural equity account.
	b, ok = balances["3101"]
	require.True(t, ok)
	assert.True(t, b.Opening.Equal(amount("300")))
}

func TestBalancesWindowEdges(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	// Entries dated exactly on start and end are period activity, not opening.
	seedLines(t, svc, date(2026, 2, 1), "1101", "4101", "10")
	seedLines(t, svc, date(2026, 2, 28), "1101", "4101", "20")

	balances, err := svc.Balances(ctx, tenant, []string{"1101"}, date(2026, 2, 1), date(2026, 2, 28))
	require.NoError(t, err)

	b := balances["1101"]
	assert.True(t, b.Opening.IsZero())
	assert.True(t, b.PeriodDebit.Equal(amount("30")))
}

func TestBalancesValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.Balances(ctx, "", nil, date(2026, 1, 1), date(2026, 1, 31))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Balances(ctx, tenant, nil, time.Time{}, date(2026, 1, 31))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Balances(ctx, tenant, nil, date(2026, 2, 1), date(2026, 1, 1))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBalancesTenantScoped(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	seedLines(t, svc, date(2026, 2, 10), "1101", "4101", "100")

	balances, err := svc.Balances(ctx, "other-tenant", nil, date(2026, 1, 1), date(2026, 12, 31))
	require.NoError(t, err)
	assert.Empty(t, balances)
}

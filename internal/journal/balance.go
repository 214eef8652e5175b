package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/ledger-core/internal/accounts"
)

// Balances aggregates per-account opening, period and closing balances for
// a tenant over [start, end]. Opening accumulates entries dated strictly
// before start; the period sums are inclusive. Every account observed in
// either aggregation is reported, so an account with only historical
// activity still shows its opening carried into the closing, and an account
// first touched inside the window appears with a zero opening. codes may be
// nil to cover the whole chart. Read-only; recent concurrent postings may
// or may not be visible.
func (s *Service) Balances(ctx context.Context, tenantID string, codes []string, start, end time.Time) (map[string]Balance, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenant ID is required", ErrValidation)
	}
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrValidation)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date precedes start date", ErrValidation)
	}

	opening, err := s.entries.SumBefore(ctx, tenantID, codes, start)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate opening balances: %w", err)
	}
	period, err := s.entries.SumRange(ctx, tenantID, codes, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate period balances: %w", err)
	}

	// Union of accounts seen before or during the window.
	out := make(map[string]Balance, len(opening)+len(period))
	for code, totals := range opening {
		nature := accounts.NatureOf(code)
		b := Balance{
			Opening:      nature.Balance(totals.Debit, totals.Credit),
			PeriodDebit:  decimal.Zero,
			PeriodCredit: decimal.Zero,
		}
		b.Closing = b.Opening
		out[code] = b
	}
	for code, totals := range period {
		nature := accounts.NatureOf(code)
		b, ok := out[code]
		if !ok {
			b = Balance{Opening: decimal.Zero}
		}
		b.PeriodDebit = totals.Debit
		b.PeriodCredit = totals.Credit
		b.Closing = b.Opening.Add(nature.Balance(totals.Debit, totals.Credit))
		out[code] = b
	}
	return out, nil
}

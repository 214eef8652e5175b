package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/ledger-core/internal/accounts"
	"github.com/example/ledger-core/internal/sequence"
)

// balanceTolerance is the maximum accepted difference between total debits
// and total credits of one entry.
var balanceTolerance = decimal.RequireFromString("0.01")

// Post validates and persists one balanced journal entry. The whole input
// is checked before anything is written: imbalanced lines, unknown account
// codes or malformed input fail with no partial effect. Lines are never
// auto-balanced or dropped; a caller that cannot construct balanced lines
// must not call Post.
func (s *Service) Post(ctx context.Context, tenantID string, input PostInput) (Posted, error) {
	if err := validateInput(tenantID, input); err != nil {
		return Posted{}, err
	}

	lines, err := s.resolveLines(ctx, tenantID, input.Lines)
	if err != nil {
		return Posted{}, err
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, l := range lines {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(balanceTolerance) {
		return Posted{}, fmt.Errorf("%w: debits (%s) != credits (%s)",
			ErrImbalancedEntry, totalDebit.StringFixed(2), totalCredit.StringFixed(2))
	}

	year := input.Date.Year()
	seq, err := s.sequences.Next(ctx, tenantID, year)
	if err != nil {
		return Posted{}, fmt.Errorf("failed to assign sequence number: %w", err)
	}

	entry := &Entry{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		Date:       input.Date,
		Concept:    input.Concept,
		SourceTag:  input.SourceTag,
		SourceID:   input.SourceID,
		SequenceNo: seq,
		Number:     sequence.Number(year, seq),
		Lines:      lines,
		CreatedAt:  s.now().UTC(),
	}

	// Single atomic create; failures surface as-is and are never retried
	// here, so a posting cannot be silently duplicated.
	if err := s.entries.Create(ctx, entry); err != nil {
		return Posted{}, fmt.Errorf("failed to persist entry %s: %w", entry.Number, err)
	}

	if s.chain != nil {
		s.chain.Append(auditPayload(entry))
	}

	return Posted{EntryID: entry.ID, SequenceNo: seq, Number: entry.Number}, nil
}

// GetEntry returns one persisted entry by reference.
func (s *Service) GetEntry(ctx context.Context, tenantID string, ref EntryRef) (*Entry, error) {
	return s.locate(ctx, tenantID, ref)
}

func validateInput(tenantID string, input PostInput) error {
	if tenantID == "" {
		return fmt.Errorf("%w: tenant ID is required", ErrValidation)
	}
	if input.Date.IsZero() {
		return fmt.Errorf("%w: entry date is required", ErrValidation)
	}
	if len(input.Lines) == 0 {
		return fmt.Errorf("%w: entry has no lines", ErrValidation)
	}
	for i, l := range input.Lines {
		if l.Account.IsZero() {
			return fmt.Errorf("%w: line %d has no account reference", ErrValidation, i)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", ErrValidation, i)
		}
		hasDebit := l.Debit.IsPositive()
		hasCredit := l.Credit.IsPositive()
		if hasDebit == hasCredit {
			return fmt.Errorf("%w: line %d must carry exactly one of debit or credit", ErrValidation, i)
		}
	}
	return nil
}

// resolveLines resolves every account reference against the tenant's chart
// and returns canonical lines keyed by chart code.
func (s *Service) resolveLines(ctx context.Context, tenantID string, inputs []LineInput) ([]Line, error) {
	lines := make([]Line, 0, len(inputs))
	for _, in := range inputs {
		account, err := s.accounts.Resolve(ctx, tenantID, in.Account)
		if err != nil {
			if errors.Is(err, accounts.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, in.Account)
			}
			return nil, fmt.Errorf("failed to resolve account %s: %w", in.Account, err)
		}
		if !account.Active {
			return nil, fmt.Errorf("%w: account %s is inactive", ErrValidation, account.Code)
		}
		lines = append(lines, Line{
			AccountCode: account.Code,
			AccountID:   account.ID,
			Debit:       in.Debit,
			Credit:      in.Credit,
			Memo:        in.Memo,
		})
	}
	return lines, nil
}

func auditPayload(e *Entry) string {
	return fmt.Sprintf("posted tenant=%s entry=%s number=%s source=%s/%s debit=%s credit=%s",
		e.TenantID, e.ID, e.Number, e.SourceTag, e.SourceID,
		e.TotalDebit().StringFixed(2), e.TotalCredit().StringFixed(2))
}

package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/ledger-core/internal/accounts"
)

// ReversalTagSuffix marks the source tag of compensating entries.
const ReversalTagSuffix = "-reversal"

// Reverse builds and posts a compensating entry for a prior entry: every
// line's debit and credit swapped, memos prefixed "Reversal:", a fresh
// sequence number and the current date. The source ID keeps pointing at the
// original business record, so repeated cancellations of related documents
// all trace back to one transaction. The original entry is never edited.
func (s *Service) Reverse(ctx context.Context, tenantID string, ref EntryRef) (Posted, error) {
	original, err := s.locate(ctx, tenantID, ref)
	if err != nil {
		return Posted{}, err
	}

	lines := make([]LineInput, 0, len(original.Lines))
	for _, l := range original.Lines {
		lines = append(lines, LineInput{
			Account: accounts.ByCode(l.AccountCode),
			Debit:   l.Credit,
			Credit:  l.Debit,
			Memo:    "Reversal: " + l.Memo,
		})
	}

	posted, err := s.Post(ctx, tenantID, PostInput{
		Date:      s.now().UTC(),
		Concept:   "Reversal: " + original.Concept,
		SourceTag: original.SourceTag + ReversalTagSuffix,
		SourceID:  original.SourceID,
		Lines:     lines,
	})
	if err != nil {
		return Posted{}, fmt.Errorf("failed to post reversal of %s: %w", original.Number, err)
	}
	return posted, nil
}

// locate finds an entry by ID or, if no ID was supplied, by the
// (source tag, source ID) of the business record that produced it.
func (s *Service) locate(ctx context.Context, tenantID string, ref EntryRef) (*Entry, error) {
	var (
		entry *Entry
		err   error
	)
	switch {
	case ref.EntryID != "":
		entry, err = s.entries.GetByID(ctx, tenantID, ref.EntryID)
	case ref.SourceTag != "" && ref.SourceID != "":
		entry, err = s.entries.GetBySource(ctx, tenantID, ref.SourceTag, ref.SourceID)
	default:
		return nil, fmt.Errorf("%w: empty entry reference", ErrNoJournalEntry)
	}
	if err != nil {
		if errors.Is(err, ErrNoJournalEntry) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to locate entry: %w", err)
	}
	return entry, nil
}

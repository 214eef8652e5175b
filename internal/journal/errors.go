package journal

import "errors"

// Error kinds surfaced to the request layer. All of them are rejected
// before any persistence: a failed posting leaves no partial effect.
var (
	// ErrValidation covers malformed, missing or non-positive input.
	ErrValidation = errors.New("VALIDATION")

	// ErrImbalancedEntry is returned when debits and credits differ by
	// more than the tolerance.
	ErrImbalancedEntry = errors.New("IMBALANCED_ENTRY")

	// ErrUnknownAccount is returned when a line references an account
	// code absent from the tenant's chart.
	ErrUnknownAccount = errors.New("UNKNOWN_ACCOUNT")

	// ErrNoJournalEntry is returned when a reversal cannot locate the
	// original entry. The caller must not mark the business record
	// canceled in that case.
	ErrNoJournalEntry = errors.New("NO_JOURNAL_ENTRY")
)

package journal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/ledger-core/internal/accounts"
)

// Line is one side of a posting inside an entry. Exactly one of Debit or
// Credit carries value. Account references are resolved at construction;
// persisted lines always carry the canonical chart code.
type Line struct {
	AccountCode string          `json:"account_code"`
	AccountID   string          `json:"account_id"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Memo        string          `json:"memo"`
}

// Entry is a balanced journal entry. Entries are append-only: never mutated
// after creation; corrections happen exclusively through reversal entries.
type Entry struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	Date       time.Time `json:"date"`
	Concept    string    `json:"concept"`
	SourceTag  string    `json:"source_tag"`
	SourceID   string    `json:"source_id"`
	SequenceNo int64     `json:"sequence_no"`
	Number     string    `json:"number"`
	Lines      []Line    `json:"lines"`
	CreatedAt  time.Time `json:"created_at"`
}

// TotalDebit sums the debit side of all lines.
func (e *Entry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines.
func (e *Entry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// LineInput is a semantic posting supplied by a business-event producer.
type LineInput struct {
	Account accounts.Ref
	Debit   decimal.Decimal
	Credit  decimal.Decimal
	Memo    string
}

// PostInput holds everything needed to post one entry.
type PostInput struct {
	Date      time.Time
	Concept   string
	SourceTag string
	SourceID  string
	Lines     []LineInput
}

// Posted identifies a successfully persisted entry.
type Posted struct {
	EntryID    string
	SequenceNo int64
	Number     string
}

// EntryRef locates an existing entry, by its ID or by the
// (source tag, source ID) pair of the business record that produced it.
type EntryRef struct {
	EntryID   string
	SourceTag string
	SourceID  string
}

// Balance is the per-account result of a period aggregation. Opening covers
// entries strictly before the window; the period sums are raw debit/credit
// totals inside it; Closing applies the account's nature to the period net.
type Balance struct {
	Opening      decimal.Decimal `json:"opening"`
	PeriodDebit  decimal.Decimal `json:"period_debit"`
	PeriodCredit decimal.Decimal `json:"period_credit"`
	Closing      decimal.Decimal `json:"closing"`
}

package accounts

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type classifies an account in the chart of accounts.
type Type string

const (
	TypeAsset     Type = "asset"
	TypeLiability Type = "liability"
	TypeEquity    Type = "equity"
	TypeIncome    Type = "income"
	TypeExpense   Type = "expense"
	TypeMemo      Type = "memo"
)

// IsValidType reports whether t is a known account type.
func IsValidType(t Type) bool {
	switch t {
	case TypeAsset, TypeLiability, TypeEquity, TypeIncome, TypeExpense, TypeMemo:
		return true
	}
	return false
}

// Account represents one row of a tenant's chart of accounts.
// (TenantID, Code) is unique; the type is practically immutable after creation.
type Account struct {
	ID         string `json:"id"`
	TenantID   string `json:"tenant_id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Type       Type   `json:"type"`
	ParentCode string `json:"parent_code,omitempty"`
	Active     bool   `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// Nature is the sign convention that makes an account's balance read
// positive in normal operation.
type Nature int

const (
	// NatureDebit: balance = debit - credit (assets, costs, expenses).
	NatureDebit Nature = iota
	// NatureCredit: balance = credit - debit (liabilities, equity, income).
	NatureCredit
)

// natureByDigit is the single definition of the code→nature convention.
// Codes starting with 1 (assets), 5 (costs) and 6 (expenses) are
// debit-natural; 2 (liabilities), 3 (equity) and 4 (income) are
// credit-natural.
var natureByDigit = map[byte]Nature{
	'1': NatureDebit,
	'5': NatureDebit,
	'6': NatureDebit,
	'2': NatureCredit,
	'3': NatureCredit,
	'4': NatureCredit,
}

// NatureOf classifies an account code by its first character. Codes outside
// the 1-6 ranges (memo accounts) fall back to debit-natural.
func NatureOf(code string) Nature {
	if code == "" {
		return NatureDebit
	}
	if n, ok := natureByDigit[code[0]]; ok {
		return n
	}
	return NatureDebit
}

// Balance applies the nature sign convention to a debit and credit total.
func (n Nature) Balance(debit, credit decimal.Decimal) decimal.Decimal {
	if n == NatureCredit {
		return credit.Sub(debit)
	}
	return debit.Sub(credit)
}

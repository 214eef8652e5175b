package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies a stock movement.
type MovementType string

const (
	// TypeInbound covers purchases and other stock receipts.
	TypeInbound MovementType = "inbound"
	// TypeOutbound covers sales and other stock issues.
	TypeOutbound MovementType = "outbound"
	// TypeAdjustment covers signed corrections with no ledger effect.
	TypeAdjustment MovementType = "adjustment"
)

// IsValidMovementType reports whether t is a known movement type.
func IsValidMovementType(t MovementType) bool {
	switch t {
	case TypeInbound, TypeOutbound, TypeAdjustment:
		return true
	}
	return false
}

// Status is the lifecycle state of a movement. The state machine is
// {active} -> cancel -> {canceled}: terminal and irreversible.
type Status string

const (
	StatusActive   Status = "active"
	StatusCanceled Status = "canceled"
)

// PaymentTerms selects the balancing account of an inbound posting.
type PaymentTerms string

const (
	PayCash   PaymentTerms = "cash"
	PayBank   PaymentTerms = "bank"
	PayCredit PaymentTerms = "credit"
)

// Movement is one stock event. The ledger lines it produced are never
// altered, only reversed; the movement itself is patched exactly twice at
// most: once to link its journal entry, once to flip status to canceled.
type Movement struct {
	ID        string          `json:"id"`
	TenantID  string          `json:"tenant_id"`
	Date      time.Time       `json:"date"`
	Type      MovementType    `json:"type"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Status    Status          `json:"status"`
	EntryID   string          `json:"entry_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// AccountMap names the chart codes the valuation engine posts against.
type AccountMap struct {
	Inventory string
	COGS      string
	Cash      string
	Bank      string
	Payable   string
}

// DefaultAccountMap matches the seeded default chart.
func DefaultAccountMap() AccountMap {
	return AccountMap{
		Inventory: "1201",
		COGS:      "5101",
		Cash:      "1101",
		Bank:      "1102",
		Payable:   "2101",
	}
}

// paymentAccount maps payment terms to the balancing account code.
func (m AccountMap) paymentAccount(terms PaymentTerms) (string, bool) {
	switch terms {
	case PayCash:
		return m.Cash, true
	case PayBank:
		return m.Bank, true
	case PayCredit:
		return m.Payable, true
	}
	return "", false
}

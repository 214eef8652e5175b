package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/ledger-core/internal/accounts"
	"github.com/example/ledger-core/internal/journal"
)

// SourceTag marks journal entries owned by the valuation engine. Ownership
// of an entry is verified by source tag plus source ID before a reversal is
// attempted.
const SourceTag = "inventory"

// Poster is the slice of the journal service the engine drives.
type Poster interface {
	Post(ctx context.Context, tenantID string, input journal.PostInput) (journal.Posted, error)
	Reverse(ctx context.Context, tenantID string, ref journal.EntryRef) (journal.Posted, error)
	GetEntry(ctx context.Context, tenantID string, ref journal.EntryRef) (*journal.Entry, error)
}

// Service derives unit and total cost for stock movements and drives the
// ledger with inventory-specific line construction.
type Service struct {
	movements MovementStore
	catalog   ProductCatalog
	journal   Poster
	chart     AccountMap
	now       func() time.Time
}

// NewService creates the valuation engine. chart selects the codes posted
// against; use DefaultAccountMap for the seeded chart.
func NewService(movements MovementStore, catalog ProductCatalog, poster Poster, chart AccountMap) *Service {
	return &Service{
		movements: movements,
		catalog:   catalog,
		journal:   poster,
		chart:     chart,
		now:       time.Now,
	}
}

// RecordMovementRequest holds parameters for one stock event. UnitCost and
// TotalCost are both optional; see the cost resolution order on Record.
type RecordMovementRequest struct {
	Date         time.Time
	Type         MovementType
	ProductID    string
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	TotalCost    decimal.Decimal
	PaymentTerms PaymentTerms
}

// Recorded reports the outcome of a recorded movement.
type Recorded struct {
	MovementID string
	EntryID    string
	Number     string
	Warning    string
}

// Record persists a stock movement and posts its ledger entry. Cost is
// resolved in priority order: explicit unit cost, then total/quantity, then
// the product's registered purchase cost. Inbound movements debit the
// inventory account against the payment account; outbound movements debit
// cost of goods sold against inventory at the movement's own recorded cost
// (no cost layer is maintained across movements). Adjustments change stock
// only and produce no entry.
//
// The sequence is movement create, entry post, entry link: three separate
// writes, not one transaction. A crash in between leaves an active movement
// without a linked entry; the reconcile scanner reports those.
func (s *Service) Record(ctx context.Context, tenantID string, req RecordMovementRequest) (Recorded, error) {
	if err := s.validate(tenantID, req); err != nil {
		return Recorded{}, err
	}

	unitCost, err := s.resolveCost(ctx, tenantID, req)
	if err != nil {
		return Recorded{}, err
	}
	totalCost := unitCost.Mul(req.Quantity.Abs())

	date := req.Date
	if date.IsZero() {
		date = s.now().UTC()
	}

	movement := &Movement{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Date:      date,
		Type:      req.Type,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitCost:  unitCost,
		TotalCost: totalCost,
		Status:    StatusActive,
		CreatedAt: s.now().UTC(),
	}
	if err := s.movements.Create(ctx, movement); err != nil {
		return Recorded{}, fmt.Errorf("failed to create movement: %w", err)
	}

	if req.Type == TypeAdjustment {
		return Recorded{MovementID: movement.ID}, nil
	}

	lines, err := s.buildLines(movement, req.PaymentTerms)
	if err != nil {
		return Recorded{MovementID: movement.ID}, err
	}

	posted, err := s.journal.Post(ctx, tenantID, journal.PostInput{
		Date:      date,
		Concept:   concept(movement),
		SourceTag: SourceTag,
		SourceID:  movement.ID,
		Lines:     lines,
	})
	if err != nil {
		// The movement stays persisted without a linked entry; the caller
		// decides whether to retry or let reconciliation flag it.
		return Recorded{MovementID: movement.ID}, fmt.Errorf("failed to post movement %s: %w", movement.ID, err)
	}

	result := Recorded{MovementID: movement.ID, EntryID: posted.EntryID, Number: posted.Number}
	if err := s.movements.LinkEntry(ctx, tenantID, movement.ID, posted.EntryID); err != nil {
		result.Warning = fmt.Sprintf("entry %s posted but not linked: %v", posted.EntryID, err)
	}
	return result, nil
}

func (s *Service) validate(tenantID string, req RecordMovementRequest) error {
	if tenantID == "" {
		return fmt.Errorf("%w: tenant ID is required", journal.ErrValidation)
	}
	if !IsValidMovementType(req.Type) {
		return fmt.Errorf("%w: invalid movement type %q", journal.ErrValidation, req.Type)
	}
	if req.ProductID == "" {
		return fmt.Errorf("%w: product ID is required", journal.ErrValidation)
	}
	if req.Type == TypeAdjustment {
		if req.Quantity.IsZero() {
			return fmt.Errorf("%w: adjustment quantity must be non-zero", journal.ErrValidation)
		}
	} else if !req.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive", journal.ErrValidation)
	}
	if req.UnitCost.IsNegative() || req.TotalCost.IsNegative() {
		return fmt.Errorf("%w: cost must not be negative", journal.ErrValidation)
	}
	if req.Type == TypeInbound {
		if _, ok := s.chart.paymentAccount(req.PaymentTerms); !ok {
			return fmt.Errorf("%w: unknown payment terms %q", journal.ErrValidation, req.PaymentTerms)
		}
	}
	return nil
}

// resolveCost applies the cost priority: explicit unit cost, total/quantity,
// then the catalog's registered purchase cost.
func (s *Service) resolveCost(ctx context.Context, tenantID string, req RecordMovementRequest) (decimal.Decimal, error) {
	if req.UnitCost.IsPositive() {
		return req.UnitCost, nil
	}
	if req.TotalCost.IsPositive() && !req.Quantity.IsZero() {
		return req.TotalCost.Div(req.Quantity.Abs()), nil
	}
	cost, err := s.catalog.PurchaseCost(ctx, tenantID, req.ProductID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to resolve product cost: %w", err)
	}
	if cost.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: product %s has negative registered cost", journal.ErrValidation, req.ProductID)
	}
	return cost, nil
}

func (s *Service) buildLines(m *Movement, terms PaymentTerms) ([]journal.LineInput, error) {
	memo := fmt.Sprintf("%s x %s @ %s", m.ProductID, m.Quantity.String(), m.UnitCost.String())
	switch m.Type {
	case TypeInbound:
		payment, ok := s.chart.paymentAccount(terms)
		if !ok {
			return nil, fmt.Errorf("%w: unknown payment terms %q", journal.ErrValidation, terms)
		}
		return []journal.LineInput{
			{Account: accounts.ByCode(s.chart.Inventory), Debit: m.TotalCost, Memo: memo},
			{Account: accounts.ByCode(payment), Credit: m.TotalCost, Memo: memo},
		}, nil
	case TypeOutbound:
		return []journal.LineInput{
			{Account: accounts.ByCode(s.chart.COGS), Debit: m.TotalCost, Memo: memo},
			{Account: accounts.ByCode(s.chart.Inventory), Credit: m.TotalCost, Memo: memo},
		}, nil
	}
	return nil, fmt.Errorf("%w: movement type %q has no posting", journal.ErrValidation, m.Type)
}

func concept(m *Movement) string {
	switch m.Type {
	case TypeInbound:
		return fmt.Sprintf("Stock receipt %s", m.ProductID)
	case TypeOutbound:
		return fmt.Sprintf("Stock issue %s", m.ProductID)
	}
	return fmt.Sprintf("Stock adjustment %s", m.ProductID)
}

// Canceled reports the outcome of a cancellation.
type Canceled struct {
	ReversalID string
	Number     string
	Warning    string
}

// Cancel reverses the movement's ledger effect and marks it canceled. The
// entry is reversed only when this engine owns it, verified by source tag
// and source ID. A movement without an engine-owned entry is canceled with
// a warning and no reversal. The status flip is a conditional update, so a
// second cancellation, sequential or concurrent, is rejected with
// ErrMovementCanceled.
func (s *Service) Cancel(ctx context.Context, tenantID, movementID string) (Canceled, error) {
	movement, err := s.movements.Get(ctx, tenantID, movementID)
	if err != nil {
		return Canceled{}, err
	}
	if movement.Status == StatusCanceled {
		return Canceled{}, fmt.Errorf("movement %s: %w", movementID, ErrMovementCanceled)
	}

	warning := ""
	var reverseRef journal.EntryRef
	if movement.EntryID == "" {
		warning = "movement has no linked journal entry; canceled without reversal"
	} else {
		entry, err := s.journal.GetEntry(ctx, tenantID, journal.EntryRef{EntryID: movement.EntryID})
		switch {
		case errors.Is(err, journal.ErrNoJournalEntry):
			return Canceled{}, fmt.Errorf("movement %s entry %s: %w", movementID, movement.EntryID, err)
		case err != nil:
			return Canceled{}, fmt.Errorf("failed to load movement entry: %w", err)
		case entry.SourceTag != SourceTag || entry.SourceID != movement.ID:
			warning = "linked entry was not created by the inventory engine; canceled without reversal"
		default:
			reverseRef = journal.EntryRef{EntryID: entry.ID}
		}
	}

	// Flip the status first: the conditional update is what serializes
	// concurrent cancellations, and the entry to reverse has already been
	// verified above.
	if err := s.movements.MarkCanceled(ctx, tenantID, movementID); err != nil {
		return Canceled{}, err
	}

	if reverseRef.EntryID == "" {
		return Canceled{Warning: warning}, nil
	}
	posted, err := s.journal.Reverse(ctx, tenantID, reverseRef)
	if err != nil {
		return Canceled{}, fmt.Errorf("failed to reverse movement %s: %w", movementID, err)
	}
	return Canceled{ReversalID: posted.EntryID, Number: posted.Number}, nil
}

// Stock returns the current quantity of a product: inbound minus outbound
// plus signed adjustments, over active movements only.
func (s *Service) Stock(ctx context.Context, tenantID, productID string) (decimal.Decimal, error) {
	movements, err := s.movements.ListByProduct(ctx, tenantID, productID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, m := range movements {
		if m.Status != StatusActive {
			continue
		}
		switch m.Type {
		case TypeInbound:
			total = total.Add(m.Quantity)
		case TypeOutbound:
			total = total.Sub(m.Quantity)
		case TypeAdjustment:
			total = total.Add(m.Quantity)
		}
	}
	return total, nil
}

// Valuation returns stock multiplied by the weighted-average inbound cost
// computed over all historical active inbound movements.
func (s *Service) Valuation(ctx context.Context, tenantID, productID string) (decimal.Decimal, error) {
	movements, err := s.movements.ListByProduct(ctx, tenantID, productID)
	if err != nil {
		return decimal.Zero, err
	}

	stock := decimal.Zero
	inboundCost := decimal.Zero
	inboundQty := decimal.Zero
	for _, m := range movements {
		if m.Status != StatusActive {
			continue
		}
		switch m.Type {
		case TypeInbound:
			stock = stock.Add(m.Quantity)
			inboundCost = inboundCost.Add(m.UnitCost.Mul(m.Quantity))
			inboundQty = inboundQty.Add(m.Quantity)
		case TypeOutbound:
			stock = stock.Sub(m.Quantity)
		case TypeAdjustment:
			stock = stock.Add(m.Quantity)
		}
	}
	if inboundQty.IsZero() {
		return decimal.Zero, nil
	}
	avg := inboundCost.Div(inboundQty)
	return stock.Mul(avg), nil
}

package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// MemoryMovementStore is an in-memory MovementStore used in tests.
type MemoryMovementStore struct {
	mu        sync.Mutex
	movements map[string]*Movement // key: tenant + "/" + id
}

// NewMemoryMovementStore creates an empty in-memory movement store.
func NewMemoryMovementStore() *MemoryMovementStore {
	return &MemoryMovementStore{movements: make(map[string]*Movement)}
}

func (s *MemoryMovementStore) Create(_ context.Context, m *Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := m.TenantID + "/" + m.ID
	if _, exists := s.movements[k]; exists {
		return fmt.Errorf("movement %s already exists", m.ID)
	}
	cp := *m
	s.movements[k] = &cp
	return nil
}

func (s *MemoryMovementStore) Get(_ context.Context, tenantID, id string) (*Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.movements[tenantID+"/"+id]
	if !ok {
		return nil, fmt.Errorf("movement %s: %w", id, ErrMovementNotFound)
	}
	cp := *m
	return &cp, nil
}

func (s *MemoryMovementStore) LinkEntry(_ context.Context, tenantID, id, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.movements[tenantID+"/"+id]
	if !ok {
		return fmt.Errorf("movement %s: %w", id, ErrMovementNotFound)
	}
	m.EntryID = entryID
	return nil
}

func (s *MemoryMovementStore) MarkCanceled(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.movements[tenantID+"/"+id]
	if !ok {
		return fmt.Errorf("movement %s: %w", id, ErrMovementNotFound)
	}
	if m.Status == StatusCanceled {
		return fmt.Errorf("movement %s: %w", id, ErrMovementCanceled)
	}
	m.Status = StatusCanceled
	return nil
}

func (s *MemoryMovementStore) ListByProduct(_ context.Context, tenantID, productID string) ([]*Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Movement
	for _, m := range s.movements {
		if m.TenantID == tenantID && m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *MemoryMovementStore) ListUnlinked(_ context.Context, tenantID string, before time.Time) ([]*Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Movement
	for _, m := range s.movements {
		if m.TenantID == tenantID && m.Status == StatusActive && m.EntryID == "" &&
			m.Type != TypeAdjustment && m.CreatedAt.Before(before) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// StaticCatalog is a fixed-price ProductCatalog for tests and dry runs.
type StaticCatalog map[string]decimal.Decimal

func (c StaticCatalog) PurchaseCost(_ context.Context, _, productID string) (decimal.Decimal, error) {
	cost, ok := c[productID]
	if !ok {
		return decimal.Zero, fmt.Errorf("product %s not in catalog", productID)
	}
	return cost, nil
}

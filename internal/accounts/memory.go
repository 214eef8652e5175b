package accounts

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store used in tests and dry runs.
type MemoryStore struct {
	mu       sync.RWMutex
	byCode   map[string]*Account // key: tenant + "/" + code
	byID     map[string]*Account // key: tenant + "/" + id
}

// NewMemoryStore creates an empty in-memory chart store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byCode: make(map[string]*Account),
		byID:   make(map[string]*Account),
	}
}

func (m *MemoryStore) Create(_ context.Context, account *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	codeKey := account.TenantID + "/" + account.Code
	if _, exists := m.byCode[codeKey]; exists {
		return fmt.Errorf("account %s: %w", account.Code, ErrDuplicateCode)
	}
	cp := *account
	m.byCode[codeKey] = &cp
	m.byID[account.TenantID+"/"+account.ID] = &cp
	return nil
}

func (m *MemoryStore) GetByCode(_ context.Context, tenantID, code string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.byCode[tenantID+"/"+code]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", code, ErrNotFound)
	}
	cp := *a
	return &cp, nil
}

func (m *MemoryStore) GetByID(_ context.Context, tenantID, id string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.byID[tenantID+"/"+id]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	cp := *a
	return &cp, nil
}

func (m *MemoryStore) List(_ context.Context, tenantID string) ([]*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Account
	for _, a := range m.byCode {
		if a.TenantID == tenantID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

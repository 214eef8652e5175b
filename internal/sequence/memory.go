package sequence

import (
	"context"
	"sync"
)

// MemoryCounterStore is an in-memory CounterStore used in tests and dry runs.
type MemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]int64 // key: tenant + "/" + key
}

// NewMemoryCounterStore creates an empty in-memory counter store.
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{counters: make(map[string]int64)}
}

func (m *MemoryCounterStore) Increment(_ context.Context, tenantID, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := tenantID + "/" + key
	m.counters[k]++
	return m.counters[k], nil
}

package journal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// MemoryEntryStore is an in-memory EntryStore used in tests and dry runs.
// Entries are copied on the way in and out, so callers can never mutate a
// persisted entry.
type MemoryEntryStore struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewMemoryEntryStore creates an empty in-memory entry store.
func NewMemoryEntryStore() *MemoryEntryStore {
	return &MemoryEntryStore{}
}

func (m *MemoryEntryStore) Create(_ context.Context, entry *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if e.TenantID == entry.TenantID && e.ID == entry.ID {
			return fmt.Errorf("entry %s already exists", entry.ID)
		}
	}
	m.entries = append(m.entries, copyEntry(entry))
	return nil
}

func (m *MemoryEntryStore) GetByID(_ context.Context, tenantID, entryID string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.entries {
		if e.TenantID == tenantID && e.ID == entryID {
			return copyEntry(e), nil
		}
	}
	return nil, fmt.Errorf("%w: entry %s", ErrNoJournalEntry, entryID)
}

func (m *MemoryEntryStore) GetBySource(_ context.Context, tenantID, sourceTag, sourceID string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.entries {
		if e.TenantID == tenantID && e.SourceTag == sourceTag && e.SourceID == sourceID {
			return copyEntry(e), nil
		}
	}
	return nil, fmt.Errorf("%w: source %s/%s", ErrNoJournalEntry, sourceTag, sourceID)
}

func (m *MemoryEntryStore) SumBefore(_ context.Context, tenantID string, codes []string, before time.Time) (map[string]Totals, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.sum(tenantID, codes, func(date time.Time) bool {
		return date.Before(before)
	}), nil
}

func (m *MemoryEntryStore) SumRange(_ context.Context, tenantID string, codes []string, start, end time.Time) (map[string]Totals, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.sum(tenantID, codes, func(date time.Time) bool {
		return !date.Before(start) && !date.After(end)
	}), nil
}

func (m *MemoryEntryStore) sum(tenantID string, codes []string, include func(time.Time) bool) map[string]Totals {
	wanted := make(map[string]bool, len(codes))
	for _, c := range codes {
		wanted[c] = true
	}

	out := make(map[string]Totals)
	for _, e := range m.entries {
		if e.TenantID != tenantID || !include(e.Date) {
			continue
		}
		for _, l := range e.Lines {
			if len(wanted) > 0 && !wanted[l.AccountCode] {
				continue
			}
			t, ok := out[l.AccountCode]
			if !ok {
				t = Totals{Debit: decimal.Zero, Credit: decimal.Zero}
			}
			t.Debit = t.Debit.Add(l.Debit)
			t.Credit = t.Credit.Add(l.Credit)
			out[l.AccountCode] = t
		}
	}
	return out
}

func copyEntry(e *Entry) *Entry {
	cp := *e
	cp.Lines = make([]Line, len(e.Lines))
	copy(cp.Lines, e.Lines)
	return &cp
}

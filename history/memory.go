package history

import (
	"sort"
	"sync"

	"github.com/hupe1980/meshkit/core"
)

// MemoryStore is a volatile HistoryStore keeping records in a per-instance
// map guarded by an RWMutex. Records are deep-copied on Store and Retrieve so
// callers never share maps with the index. All data is lost on process exit.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]core.Record
}

// NewMemoryStore returns an empty in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]core.Record)}
}

// Store associates a copy of record with key, overwriting any prior record.
func (m *MemoryStore) Store(key string, record core.Record) error {
	if err := validateKey(key); err != nil {
		return err
	}
	cp := core.CloneRecord(record)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = cp
	return nil
}

// Retrieve returns a copy of the record for key, or an empty record if the key
// is not present.
func (m *MemoryStore) Retrieve(key string) (core.Record, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return core.CloneRecord(m.records[key]), nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (m *MemoryStore) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

// Keys returns a sorted snapshot of the live keys.
func (m *MemoryStore) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.records))
	for k := range m.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func validateKey(key string) error {
	if key == "" {
		return core.InvalidArgumentf("history key must not be empty")
	}
	return nil
}

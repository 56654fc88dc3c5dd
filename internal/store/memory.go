package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	order   []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
	}
}

// Save stores record, replacing any record with the same ID.
func (m *MemoryStore) Save(_ context.Context, record Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[record.ID]; !exists {
		m.order = append(m.order, record.ID)
	}
	m.records[record.ID] = cloneRecord(record)
	return nil
}

// Get returns the record with the given ID.
func (m *MemoryStore) Get(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return cloneRecord(record), nil
}

// List returns all records in insertion order.
func (m *MemoryStore) List(_ context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]Record, 0, len(m.order))
	for _, id := range m.order {
		records = append(records, cloneRecord(m.records[id]))
	}
	return records, nil
}

// Delete removes the record with the given ID.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

// cloneRecord copies the slices and pointers of record so callers never share them with
// the store.
func cloneRecord(record Record) Record {
	record.Result.Schedule = slices.Clone(record.Result.Schedule)
	record.Result.CashFlows = slices.Clone(record.Result.CashFlows)
	record.Result.Summary.IRRMonthly = cloneFloat(record.Result.Summary.IRRMonthly)
	record.Result.Summary.IRRAnnual = cloneFloat(record.Result.Summary.IRRAnnual)
	return record
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

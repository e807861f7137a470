package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps the most recent records in a fixed-size ring.
type MemoryStore struct {
	mu    sync.RWMutex
	ring  []*SolveRecord
	next  int
	count int
	byID  map[string]*SolveRecord
}

// NewMemoryStore returns a store holding at most capacity records.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 1
	}
	return &MemoryStore{
		ring: make([]*SolveRecord, capacity),
		byID: make(map[string]*SolveRecord, capacity),
	}
}

func (m *MemoryStore) Save(_ context.Context, rec *SolveRecord) error {
	if rec == nil || rec.ID == "" {
		return fmt.Errorf("save: record id is required")
	}
	c := cloneRecord(rec)

	m.mu.Lock()
	defer m.mu.Unlock()
	if old := m.ring[m.next]; old != nil && m.byID[old.ID] == old {
		delete(m.byID, old.ID)
	}
	m.ring[m.next] = c
	m.byID[c.ID] = c
	m.next = (m.next + 1) % len(m.ring)
	if m.count < len(m.ring) {
		m.count++
	}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*SolveRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (m *MemoryStore) Recent(_ context.Context, limit int) ([]*SolveRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > m.count {
		limit = m.count
	}
	out := make([]*SolveRecord, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (m.next - i + len(m.ring)) % len(m.ring)
		out = append(out, cloneRecord(m.ring[idx]))
	}
	return out, nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }

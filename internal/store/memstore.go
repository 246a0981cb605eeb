package store

import (
	"context"
	"sync"
)

// MemStore is the in-memory Store used in tests and when no DB path is
// configured.
type MemStore struct {
	mu       sync.Mutex
	outcomes []Outcome
	nextID   int64
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{nextID: 1}
}

func (m *MemStore) SaveOutcome(_ context.Context, o Outcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = m.nextID
	m.nextID++
	m.outcomes = append(m.outcomes, o)
	return nil
}

// ListOutcomes returns outcomes newest first, like the SQL store.
func (m *MemStore) ListOutcomes(_ context.Context, limit int) ([]Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.outcomes)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Outcome, 0, n)
	for i := len(m.outcomes) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.outcomes[i])
	}
	return out, nil
}

func (m *MemStore) Close() error { return nil }

package memory

import (
	"context"
	"sync"

	"github.com/aretw0/acceptor/pkg/domain"
)

// Store implements ports.ResultStore in memory.
// Safe for concurrent use.
type Store struct {
	data  map[string][]domain.Record
	limit int
	mu    sync.RWMutex
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLimit caps the records kept per machine; the oldest are dropped first.
func WithLimit(n int) StoreOption {
	return func(s *Store) {
		s.limit = n
	}
}

// NewStore creates a new in-memory store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		data: make(map[string][]domain.Record),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save appends the record to its machine's history.
func (s *Store) Save(ctx context.Context, rec domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := append(s.data[rec.Machine], rec)
	if s.limit > 0 && len(records) > s.limit {
		records = append([]domain.Record(nil), records[len(records)-s.limit:]...)
	}
	s.data[rec.Machine] = records
	return nil
}

// List returns the newest records first.
func (s *Store) List(ctx context.Context, machine string, limit int) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.data[machine]
	n := len(records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.Record, 0, n)
	for i := len(records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, records[i])
	}
	return out, nil
}

// Delete removes the history of a machine.
func (s *Store) Delete(ctx context.Context, machine string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, machine)
	return nil
}

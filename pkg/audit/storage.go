package audit

import (
	"context"
	"slices"
	"sync"
)

// Storage persists audit records. Implementations append; nothing ever
// updates or deletes a stored record.
type Storage interface {
	Store(ctx context.Context, rec Record) error
}

// MemoryStorage is an append-only in-memory Storage for tests and
// single-process deployments.
type MemoryStorage struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Store appends the record.
func (s *MemoryStorage) Store(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// Records returns a copy of everything stored, in insertion order.
func (s *MemoryStorage) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Len returns the number of stored records.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

package entitlement

import (
	"errors"
	"fmt"
	"sync"
)

// MatrixStore holds the current matrix snapshot and serializes updates
// with an optimistic version check. Readers never block on writers; a
// write replaces the snapshot atomically or not at all.
type MatrixStore struct {
	mu      sync.RWMutex
	current *Matrix
	version int64
}

// NewMatrixStore creates a store seeded with the given snapshot at
// version 1.
func NewMatrixStore(initial *Matrix) *MatrixStore {
	return &MatrixStore{current: initial, version: 1}
}

// Current returns the live snapshot and its version.
func (s *MatrixStore) Current() (*Matrix, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.version
}

// Put replaces the snapshot if expectedVersion is still current. A
// stale expectedVersion returns ErrStaleWrite instead of silently
// overwriting a concurrent edit. Returns the new version on success.
func (s *MatrixStore) Put(next *Matrix, expectedVersion int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expectedVersion != s.version {
		return 0, errors.Join(ErrStaleWrite,
			fmt.Errorf("expected version %d, current is %d", expectedVersion, s.version))
	}

	s.current = next
	s.version++
	return s.version, nil
}

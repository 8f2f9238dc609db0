package rollout

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/entitlement"
)

// MemoryStore is an in-memory rollout policy store. Reads never block
// on writes: lookups take the read lock and see either the previous or
// the new policy as a whole, never a partial merge. Writes are
// serialized per store and rejected when stale.
type MemoryStore struct {
	mu       sync.RWMutex
	policies map[string]Policy
}

// NewMemoryStore creates a store seeded with the given policies at
// version 1.
func NewMemoryStore(seed ...Policy) (*MemoryStore, error) {
	s := &MemoryStore{policies: make(map[string]Policy, len(seed))}
	for _, p := range seed {
		if p.CountryCode == "" {
			return nil, errors.Join(ErrInvalidPolicy, fmt.Errorf("policy missing country code"))
		}
		p.Version = 1
		p.UpdatedAt = time.Now().UTC()
		s.policies[p.CountryCode] = p.clone()
	}
	return s, nil
}

// Put stores a policy if expectedVersion matches the current version
// for that country (zero for a new country). On conflict it returns
// ErrStaleWrite with the current version in the error, never silently
// overwriting the concurrent edit. Returns the stored policy with its
// new version.
func (s *MemoryStore) Put(ctx context.Context, p Policy, expectedVersion int64) (Policy, error) {
	if p.CountryCode == "" {
		return Policy{}, errors.Join(ErrInvalidPolicy, fmt.Errorf("policy missing country code"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.policies[p.CountryCode]
	currentVersion := int64(0)
	if exists {
		currentVersion = current.Version
	}
	if expectedVersion != currentVersion {
		return Policy{}, errors.Join(ErrStaleWrite,
			fmt.Errorf("country %s: expected version %d, current is %d",
				p.CountryCode, expectedVersion, currentVersion))
	}

	p.Version = currentVersion + 1
	p.UpdatedAt = time.Now().UTC()
	s.policies[p.CountryCode] = p.clone()
	return p, nil
}

// Get returns the country's policy, if any.
func (s *MemoryStore) Get(countryCode string) (Policy, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.policies[countryCode]
	if !ok {
		return Policy{}, false
	}
	return p.clone(), true
}

// IsCountryActive reports whether the country is switched on at all.
func (s *MemoryStore) IsCountryActive(countryCode string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.policies[countryCode]
	return ok && p.Active
}

// IsModuleEnabled reports whether the module exists in the country. An
// inactive country disables every module.
func (s *MemoryStore) IsModuleEnabled(countryCode string, moduleID entitlement.ModuleID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.policies[countryCode]
	if !ok || !p.Active {
		return false
	}
	return slices.Contains(p.Modules, moduleID)
}

// IsFeatureEnabled reports whether the feature key is enabled in the
// country. Absent keys are disabled.
func (s *MemoryStore) IsFeatureEnabled(countryCode, featureKey string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.policies[countryCode]
	if !ok || !p.Active {
		return false
	}
	return p.Features[featureKey]
}

// IsBusinessTypeEnabled reports whether the business type may register
// in the country.
func (s *MemoryStore) IsBusinessTypeEnabled(countryCode, businessType string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.policies[countryCode]
	if !ok || !p.Active {
		return false
	}
	return slices.Contains(p.BusinessTypes, businessType)
}

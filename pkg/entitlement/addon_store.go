package entitlement

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// AddonStore manages per-tenant add-on entitlements. Grants and
// revocations are soft state transitions; nothing is hard-deleted.
// Every mutation bumps the tenant's state version, which participates
// in the decision cache key so cached allows die with the state that
// produced them.
type AddonStore interface {
	// Grant activates an add-on entitlement, creating it if absent and
	// reactivating it if previously revoked.
	Grant(ctx context.Context, tenantID uuid.UUID, addon Addon) error

	// Revoke deactivates an existing grant. Returns ErrAddonNotFound
	// when no grant exists for (addon, country).
	Revoke(ctx context.Context, tenantID uuid.UUID, addonID ModuleID, countryCode string) error

	// ListByTenant returns all of the tenant's grants, revoked ones
	// included.
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]Addon, error)

	// StateVersion returns the tenant's monotonically increasing
	// addon-state version (zero for a tenant with no history).
	StateVersion(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// memoryAddonStore is an in-memory AddonStore for tests and
// single-process deployments.
type memoryAddonStore struct {
	mu       sync.RWMutex
	addons   map[uuid.UUID][]Addon
	versions map[uuid.UUID]int64
}

// NewMemoryAddonStore creates an empty in-memory add-on store.
func NewMemoryAddonStore() AddonStore {
	return &memoryAddonStore{
		addons:   make(map[uuid.UUID][]Addon),
		versions: make(map[uuid.UUID]int64),
	}
}

func (s *memoryAddonStore) Grant(ctx context.Context, tenantID uuid.UUID, addon Addon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	addon.Active = true
	list := s.addons[tenantID]
	replaced := false
	for i, existing := range list {
		if existing.AddonID == addon.AddonID && existing.CountryCode == addon.CountryCode {
			list[i] = addon
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, addon)
	}
	s.addons[tenantID] = list
	s.versions[tenantID]++
	return nil
}

func (s *memoryAddonStore) Revoke(ctx context.Context, tenantID uuid.UUID, addonID ModuleID, countryCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.addons[tenantID]
	for i, existing := range list {
		if existing.AddonID == addonID && existing.CountryCode == countryCode {
			list[i].Active = false
			s.versions[tenantID]++
			return nil
		}
	}
	return ErrAddonNotFound
}

func (s *memoryAddonStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]Addon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.addons[tenantID]), nil
}

func (s *memoryAddonStore) StateVersion(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.versions[tenantID], nil
}

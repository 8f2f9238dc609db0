package permission

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
)

// Source provides the permission catalog: the enumerated set of
// permissions granted to each role. Roles never inherit from each other;
// if two roles share a permission, the catalog lists it twice.
type Source interface {
	// Load returns the full role-to-permissions catalog.
	Load(ctx context.Context) (map[Role][]Permission, error)
}

// Registry answers permission checks over an immutable catalog snapshot.
// It performs no I/O after construction and is safe for concurrent use.
type Registry struct {
	grants  map[Role]map[Permission]struct{}
	builtAt time.Time
}

// NewRegistry builds a Registry from the given source. Every role key in
// the catalog must be canonical; a catalog mentioning an unknown role is
// rejected at build time rather than silently ignored at check time.
func NewRegistry(ctx context.Context, source Source) (*Registry, error) {
	catalog, err := source.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}

	grants := make(map[Role]map[Permission]struct{}, len(catalog))
	for role, perms := range catalog {
		if !IsCanonical(role) {
			return nil, errors.Join(ErrInvalidCatalog,
				fmt.Errorf("catalog references unknown role %q", role))
		}
		set := make(map[Permission]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		grants[role] = set
	}

	return &Registry{
		grants:  grants,
		builtAt: time.Now().UTC(),
	}, nil
}

// HasPermission reports whether role holds the given permission. Unknown
// roles and unknown permission ids both return false, never an error, so
// a guard added before its permission ships fails closed.
func (r *Registry) HasPermission(role Role, perm Permission) bool {
	set, ok := r.grants[role]
	if !ok {
		return false
	}
	_, ok = set[perm]
	return ok
}

// PermissionsOf returns a sorted copy of the permissions granted to role.
// Unknown roles return an empty slice.
func (r *Registry) PermissionsOf(role Role) []Permission {
	set, ok := r.grants[role]
	if !ok {
		return nil
	}
	perms := make([]Permission, 0, len(set))
	for p := range set {
		perms = append(perms, p)
	}
	slices.Sort(perms)
	return perms
}

// Version returns the snapshot build time. Callers comparing two registry
// instances can use it to detect a newer catalog.
func (r *Registry) Version() time.Time {
	return r.builtAt
}

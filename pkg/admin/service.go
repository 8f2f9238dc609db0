package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/audit"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/entitlement"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/rollout"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/scope"
)

// PolicyStore is the rollout store surface the admin service mutates:
// reads for the previous-value snapshot, versioned Put for the write.
type PolicyStore interface {
	rollout.Provider
	Put(ctx context.Context, p rollout.Policy, expectedVersion int64) (rollout.Policy, error)
}

// Service executes administrative mutations with a durable audit trail.
// Applied state without an audit record must never exist, so for the
// versioned snapshots (policies, matrix) the record is written before
// the store; a failed audit write aborts the mutation with nothing
// applied. Add-on mutations apply first, because their audited value is
// the store's own post-change state, and are undone when the audit
// write fails.
//
// Mutations are serialized on a service mutex. The service must be the
// sole writer of its stores; the mutex plus the version pre-check is
// what guarantees a store write cannot fail after its record is
// already durable.
//
// Authorization is the HTTP layer's job (guard.RequireSuperAdmin); this
// service records who acted, it does not decide who may.
type Service struct {
	mu       sync.Mutex
	policies PolicyStore
	matrix   *entitlement.MatrixStore
	addons   entitlement.AddonStore
	recorder *audit.Recorder
}

// NewService wires the admin mutation surface. All dependencies are
// required.
func NewService(policies PolicyStore, matrix *entitlement.MatrixStore, addons entitlement.AddonStore, recorder *audit.Recorder) *Service {
	if recorder == nil {
		panic("admin: recorder cannot be nil")
	}
	return &Service{policies: policies, matrix: matrix, addons: addons, recorder: recorder}
}

// PutPolicy updates a country rollout policy with an optimistic version
// check. A concurrent edit surfaces as rollout.ErrStaleWrite before any
// audit record is written; only the applied write is audited, and it is
// audited before it becomes visible to readers.
func (s *Service) PutPolicy(ctx context.Context, actor scope.Actor, p rollout.Policy, expectedVersion int64) (rollout.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var prev json.RawMessage
	if current, ok := s.policies.Get(p.CountryCode); ok {
		if current.Version != expectedVersion {
			return rollout.Policy{}, errors.Join(rollout.ErrStaleWrite,
				fmt.Errorf("country %s: version %d is no longer current", p.CountryCode, expectedVersion))
		}
		prev, _ = json.Marshal(current)
	} else if expectedVersion != 0 {
		return rollout.Policy{}, errors.Join(rollout.ErrStaleWrite,
			fmt.Errorf("country %s does not exist at version %d", p.CountryCode, expectedVersion))
	}

	intended := p
	intended.Version = expectedVersion + 1
	intended.UpdatedAt = time.Now().UTC()
	next, _ := json.Marshal(intended)

	if err := s.record(ctx, actor, audit.Record{
		Action:        "rollout.policy.put",
		TargetType:    "rollout_policy",
		TargetID:      p.CountryCode,
		CountryCode:   p.CountryCode,
		PreviousValue: prev,
		NewValue:      next,
	}); err != nil {
		return rollout.Policy{}, err
	}

	return s.policies.Put(ctx, p, expectedVersion)
}

// PutMatrix replaces the entitlement matrix snapshot. The audit record
// carries the version transition; matrix contents travel through the
// configuration store, not the audit log.
func (s *Service) PutMatrix(ctx context.Context, actor scope.Actor, next *entitlement.Matrix, expectedVersion int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, current := s.matrix.Current(); current != expectedVersion {
		return 0, errors.Join(entitlement.ErrStaleWrite,
			fmt.Errorf("expected version %d, current is %d", expectedVersion, current))
	}

	prev, _ := json.Marshal(map[string]int64{"version": expectedVersion})
	now, _ := json.Marshal(map[string]int64{"version": expectedVersion + 1})
	if err := s.record(ctx, actor, audit.Record{
		Action:        "entitlement.matrix.put",
		TargetType:    "entitlement_matrix",
		TargetID:      "matrix",
		PreviousValue: prev,
		NewValue:      now,
	}); err != nil {
		return 0, err
	}

	return s.matrix.Put(next, expectedVersion)
}

// GrantAddon activates an add-on entitlement for a tenant and audits
// the grant with the tenant's add-on list before and after. If the
// audit write fails the grant is undone and the error returned.
func (s *Service) GrantAddon(ctx context.Context, actor scope.Actor, tenantID uuid.UUID, addon entitlement.Addon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevList, _ := s.addons.ListByTenant(ctx, tenantID)
	prev, _ := json.Marshal(prevList)

	if err := s.addons.Grant(ctx, tenantID, addon); err != nil {
		return err
	}

	if err := s.record(ctx, actor, audit.Record{
		Action:        "entitlement.addon.grant",
		TargetType:    "tenant",
		TargetID:      tenantID.String(),
		CountryCode:   addon.CountryCode,
		PreviousValue: prev,
		NewValue:      s.addonSnapshot(ctx, tenantID),
	}); err != nil {
		s.revertAddon(ctx, tenantID, prevList, addon.AddonID, addon.CountryCode)
		return err
	}
	return nil
}

// RevokeAddon deactivates an add-on grant. The row survives with
// Active=false so history stays queryable. If the audit write fails the
// revocation is undone and the error returned.
func (s *Service) RevokeAddon(ctx context.Context, actor scope.Actor, tenantID uuid.UUID, addonID entitlement.ModuleID, countryCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevList, _ := s.addons.ListByTenant(ctx, tenantID)
	prev, _ := json.Marshal(prevList)

	if err := s.addons.Revoke(ctx, tenantID, addonID, countryCode); err != nil {
		return err
	}

	if err := s.record(ctx, actor, audit.Record{
		Action:        "entitlement.addon.revoke",
		TargetType:    "tenant",
		TargetID:      tenantID.String(),
		CountryCode:   countryCode,
		PreviousValue: prev,
		NewValue:      s.addonSnapshot(ctx, tenantID),
	}); err != nil {
		s.revertAddon(ctx, tenantID, prevList, addonID, countryCode)
		return err
	}
	return nil
}

// revertAddon restores the pre-mutation state of one (addon, country)
// row after a failed audit write. A row absent from the previous list
// is deactivated, which is entitlement-equivalent to never granted.
func (s *Service) revertAddon(ctx context.Context, tenantID uuid.UUID, prev []entitlement.Addon, addonID entitlement.ModuleID, countryCode string) {
	for _, a := range prev {
		if a.AddonID == addonID && a.CountryCode == countryCode {
			if a.Active {
				_ = s.addons.Grant(ctx, tenantID, a)
			} else {
				_ = s.addons.Revoke(ctx, tenantID, addonID, countryCode)
			}
			return
		}
	}
	_ = s.addons.Revoke(ctx, tenantID, addonID, countryCode)
}

func (s *Service) addonSnapshot(ctx context.Context, tenantID uuid.UUID) json.RawMessage {
	addons, err := s.addons.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil
	}
	raw, _ := json.Marshal(addons)
	return raw
}

func (s *Service) record(ctx context.Context, actor scope.Actor, rec audit.Record) error {
	rec.ActorID = actor.UserID
	rec.ActorRole = string(actor.Role)
	rec.Decision = audit.DecisionApplied
	if err := s.recorder.Record(ctx, rec); err != nil {
		return errors.Join(ErrAuditRequired, err)
	}
	return nil
}

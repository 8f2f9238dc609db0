package admin_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/admin"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/audit"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/entitlement"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/permission"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/rollout"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/scope"
)

type brokenStorage struct{}

func (brokenStorage) Store(context.Context, audit.Record) error {
	return errors.New("disk full")
}

func testMatrix(t *testing.T) *entitlement.Matrix {
	t.Helper()
	m, err := entitlement.NewMatrix(entitlement.MatrixConfig{
		Modules: map[entitlement.ModuleID]map[entitlement.Tier]entitlement.ModuleGrant{
			"pos": {entitlement.TierPro: {Access: entitlement.AccessIncluded}},
		},
	})
	require.NoError(t, err)
	return m
}

type fixture struct {
	svc      *admin.Service
	policies *rollout.MemoryStore
	matrix   *entitlement.MatrixStore
	addons   entitlement.AddonStore
}

func newFixture(t *testing.T, storage audit.Storage) fixture {
	t.Helper()
	policies, err := rollout.NewMemoryStore(rollout.Policy{CountryCode: "IN", Active: true})
	require.NoError(t, err)
	matrix := entitlement.NewMatrixStore(testMatrix(t))
	addons := entitlement.NewMemoryAddonStore()
	svc := admin.NewService(policies, matrix, addons,
		audit.NewRecorder(storage, slog.New(slog.NewTextHandler(io.Discard, nil))))
	return fixture{svc: svc, policies: policies, matrix: matrix, addons: addons}
}

var superAdmin = scope.Actor{UserID: uuid.New(), Role: permission.RoleSuperAdmin}

func TestPutPolicy(t *testing.T) {
	t.Parallel()

	t.Run("applied write is audited with previous and new value", func(t *testing.T) {
		t.Parallel()
		storage := audit.NewMemoryStorage()
		f := newFixture(t, storage)

		base, ok := f.policies.Get("IN")
		require.True(t, ok)

		base.ComingSoonMessage = "maintenance window"
		updated, err := f.svc.PutPolicy(context.Background(), superAdmin, base, base.Version)
		require.NoError(t, err)
		assert.Greater(t, updated.Version, base.Version)

		records := storage.Records()
		require.Len(t, records, 1)
		rec := records[0]
		assert.Equal(t, "rollout.policy.put", rec.Action)
		assert.Equal(t, audit.DecisionApplied, rec.Decision)
		assert.Equal(t, superAdmin.UserID, rec.ActorID)
		assert.NotEmpty(t, rec.PreviousValue)
		assert.Contains(t, string(rec.NewValue), "maintenance window")
	})

	t.Run("stale write leaves no audit record", func(t *testing.T) {
		t.Parallel()
		storage := audit.NewMemoryStorage()
		f := newFixture(t, storage)

		base, _ := f.policies.Get("IN")
		_, err := f.svc.PutPolicy(context.Background(), superAdmin, base, base.Version+7)
		assert.ErrorIs(t, err, rollout.ErrStaleWrite)
		assert.Zero(t, storage.Len())
	})

	t.Run("audit failure aborts with nothing applied", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, brokenStorage{})

		base, _ := f.policies.Get("IN")
		edit := base
		edit.ComingSoonMessage = "should never be visible"
		_, err := f.svc.PutPolicy(context.Background(), superAdmin, edit, base.Version)
		assert.ErrorIs(t, err, admin.ErrAuditRequired)

		current, ok := f.policies.Get("IN")
		require.True(t, ok)
		assert.Equal(t, base.Version, current.Version)
		assert.Empty(t, current.ComingSoonMessage)
	})

	t.Run("concurrent editors from the same base version", func(t *testing.T) {
		t.Parallel()
		storage := audit.NewMemoryStorage()
		f := newFixture(t, storage)

		base, _ := f.policies.Get("IN")

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				edit := base
				edit.ComingSoonMessage = fmt.Sprintf("edit %d", i)
				_, errs[i] = f.svc.PutPolicy(context.Background(), superAdmin, edit, base.Version)
			}()
		}
		wg.Wait()

		var applied, stale int
		for _, err := range errs {
			switch {
			case err == nil:
				applied++
			case errors.Is(err, rollout.ErrStaleWrite):
				stale++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, applied)
		assert.Equal(t, 1, stale)
		assert.Equal(t, 1, storage.Len(), "exactly one audit record for the version transition")
	})
}

func TestPutMatrix(t *testing.T) {
	t.Parallel()

	t.Run("versioned replace is audited once", func(t *testing.T) {
		t.Parallel()
		storage := audit.NewMemoryStorage()
		f := newFixture(t, storage)

		version, err := f.svc.PutMatrix(context.Background(), superAdmin, testMatrix(t), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), version)

		_, err = f.svc.PutMatrix(context.Background(), superAdmin, testMatrix(t), 1)
		assert.ErrorIs(t, err, entitlement.ErrStaleWrite)

		require.Equal(t, 1, storage.Len())
		assert.Equal(t, "entitlement.matrix.put", storage.Records()[0].Action)
	})

	t.Run("audit failure aborts with nothing applied", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, brokenStorage{})

		_, err := f.svc.PutMatrix(context.Background(), superAdmin, testMatrix(t), 1)
		assert.ErrorIs(t, err, admin.ErrAuditRequired)

		_, version := f.matrix.Current()
		assert.Equal(t, int64(1), version)
	})
}

func TestAddonMutations(t *testing.T) {
	t.Parallel()

	t.Run("grant and revoke are each audited", func(t *testing.T) {
		t.Parallel()
		storage := audit.NewMemoryStorage()
		f := newFixture(t, storage)

		tenantID := uuid.New()
		grant := entitlement.Addon{AddonID: "pos", CountryCode: "IN", Active: true}

		require.NoError(t, f.svc.GrantAddon(context.Background(), superAdmin, tenantID, grant))
		require.NoError(t, f.svc.RevokeAddon(context.Background(), superAdmin, tenantID, "pos", "IN"))

		list, err := f.addons.ListByTenant(context.Background(), tenantID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.False(t, list[0].Active)

		records := storage.Records()
		require.Len(t, records, 2)
		assert.Equal(t, "entitlement.addon.grant", records[0].Action)
		assert.Equal(t, tenantID.String(), records[0].TargetID)
		assert.Equal(t, "entitlement.addon.revoke", records[1].Action)
		assert.Contains(t, string(records[1].NewValue), `"pos"`)
	})

	t.Run("audit failure undoes the grant", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, brokenStorage{})

		tenantID := uuid.New()
		grant := entitlement.Addon{AddonID: "pos", CountryCode: "IN", Active: true}
		err := f.svc.GrantAddon(context.Background(), superAdmin, tenantID, grant)
		assert.ErrorIs(t, err, admin.ErrAuditRequired)

		list, lerr := f.addons.ListByTenant(context.Background(), tenantID)
		require.NoError(t, lerr)
		for _, a := range list {
			assert.False(t, a.Active, "no active grant may survive a failed audit write")
		}
	})

	t.Run("audit failure restores a revoked grant", func(t *testing.T) {
		t.Parallel()
		good := audit.NewMemoryStorage()
		f := newFixture(t, good)

		tenantID := uuid.New()
		grant := entitlement.Addon{AddonID: "pos", CountryCode: "IN", Active: true}
		require.NoError(t, f.svc.GrantAddon(context.Background(), superAdmin, tenantID, grant))

		// Same stores, failing audit storage.
		broken := admin.NewService(f.policies, f.matrix, f.addons,
			audit.NewRecorder(brokenStorage{}, slog.New(slog.NewTextHandler(io.Discard, nil))))
		err := broken.RevokeAddon(context.Background(), superAdmin, tenantID, "pos", "IN")
		assert.ErrorIs(t, err, admin.ErrAuditRequired)

		list, lerr := f.addons.ListByTenant(context.Background(), tenantID)
		require.NoError(t, lerr)
		require.Len(t, list, 1)
		assert.True(t, list[0].Active, "the grant must be restored after a failed audit write")
	})
}

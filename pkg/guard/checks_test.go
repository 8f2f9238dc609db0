package guard_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/entitlement"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/guard"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/permission"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/rollout"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/scope"
)

func testRegistry(t *testing.T) *permission.Registry {
	t.Helper()
	reg, err := permission.NewRegistry(context.Background(), permission.DefaultSource())
	require.NoError(t, err)
	return reg
}

func testEntitlements(t *testing.T) *entitlement.Service {
	t.Helper()
	matrix, err := entitlement.NewMatrix(entitlement.MatrixConfig{
		Modules: map[entitlement.ModuleID]map[entitlement.Tier]entitlement.ModuleGrant{
			"pos": {
				entitlement.TierFree:    {Access: entitlement.AccessLocked},
				entitlement.TierStarter: {Access: entitlement.AccessAddon, PriceUSD: 1500},
				entitlement.TierPro:     {Access: entitlement.AccessIncluded},
			},
			"legacy_reports": {
				entitlement.TierFree: {Access: entitlement.AccessLocked},
			},
		},
	})
	require.NoError(t, err)
	return entitlement.NewService(matrix, entitlement.PricingTable{})
}

func testPolicies(t *testing.T) rollout.Provider {
	t.Helper()
	store, err := rollout.NewMemoryStore(
		rollout.Policy{
			CountryCode: "IN",
			Active:      true,
			Modules:     []entitlement.ModuleID{"pos", "legacy_reports"},
		},
		rollout.Policy{
			CountryCode:       "UK",
			Active:            true,
			ComingSoonMessage: "POS is coming to the UK soon",
		},
	)
	require.NoError(t, err)
	return store
}

func TestCheckPermission(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)

	t.Run("role holds permission", func(t *testing.T) {
		t.Parallel()
		actor := scope.Actor{UserID: uuid.New(), Role: permission.RolePlatformAdmin}
		d := guard.CheckPermission(reg, actor, permission.PermManageAddonGrants)
		assert.True(t, d.Allowed())
	})

	t.Run("role lacks permission", func(t *testing.T) {
		t.Parallel()
		actor := scope.Actor{UserID: uuid.New(), Role: permission.RoleTenantViewer}
		d := guard.CheckPermission(reg, actor, permission.PermManagePlansPricing)
		assert.False(t, d.Allowed())
		assert.Equal(t, guard.CodeForbidden, d.Code)
	})

	t.Run("nil registry denies", func(t *testing.T) {
		t.Parallel()
		actor := scope.Actor{UserID: uuid.New(), Role: permission.RoleSuperAdmin}
		d := guard.CheckPermission(nil, actor, permission.PermManagePlansPricing)
		assert.False(t, d.Allowed())
	})
}

func TestCheckSuperAdmin(t *testing.T) {
	t.Parallel()

	t.Run("super admin passes", func(t *testing.T) {
		t.Parallel()
		d := guard.CheckSuperAdmin(scope.Actor{Role: permission.RoleSuperAdmin})
		assert.True(t, d.Allowed())
	})

	t.Run("platform admin with full permissions still fails", func(t *testing.T) {
		t.Parallel()
		d := guard.CheckSuperAdmin(scope.Actor{Role: permission.RolePlatformAdmin})
		assert.False(t, d.Allowed())
		assert.Equal(t, guard.CodeSuperAdminRequired, d.Code)
	})
}

func TestCheckTenantScope(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()

	t.Run("country admin outside assignment gets not found", func(t *testing.T) {
		t.Parallel()
		actor := scope.Actor{
			UserID:     uuid.New(),
			Role:       permission.RolePlatformAdmin,
			CountryIDs: []string{"IN"},
		}
		d := guard.CheckTenantScope(actor, tenantID, "UK")
		assert.Equal(t, guard.OutcomeNotFound, d.Outcome)
		assert.Equal(t, guard.CodeNotFound, d.Code)
	})

	t.Run("country admin inside assignment passes", func(t *testing.T) {
		t.Parallel()
		actor := scope.Actor{
			UserID:     uuid.New(),
			Role:       permission.RolePlatformAdmin,
			CountryIDs: []string{"IN"},
		}
		d := guard.CheckTenantScope(actor, tenantID, "IN")
		assert.True(t, d.Allowed())
	})

	t.Run("tenant actor limited to own tenant", func(t *testing.T) {
		t.Parallel()
		own := uuid.New()
		actor := scope.Actor{
			UserID:   uuid.New(),
			Role:     permission.RoleTenantAdmin,
			TenantID: &own,
		}
		assert.True(t, guard.CheckTenantScope(actor, own, "IN").Allowed())
		assert.Equal(t, guard.OutcomeNotFound, guard.CheckTenantScope(actor, tenantID, "IN").Outcome)
	})

	t.Run("super admin covers everything", func(t *testing.T) {
		t.Parallel()
		actor := scope.Actor{UserID: uuid.New(), Role: permission.RoleSuperAdmin}
		assert.True(t, guard.CheckTenantScope(actor, tenantID, "UK").Allowed())
	})
}

func TestCheckModuleAccess(t *testing.T) {
	t.Parallel()

	svc := testEntitlements(t)
	policies := testPolicies(t)
	upgradeURL := func(moduleID entitlement.ModuleID, tier *entitlement.Tier) string {
		return "/billing/upgrade?module=" + string(moduleID)
	}

	t.Run("country gate precedes tier gate", func(t *testing.T) {
		t.Parallel()
		tenant := entitlement.Tenant{ID: uuid.New(), Tier: entitlement.TierPro, CountryCode: "UK"}
		d := guard.CheckModuleAccess(policies, svc, tenant, "pos", upgradeURL)
		assert.Equal(t, guard.CodeCountryDisabled, d.Code)
		assert.Equal(t, "POS is coming to the UK soon", d.Message)
		assert.Empty(t, d.UpgradeURL)
	})

	t.Run("included tier allows", func(t *testing.T) {
		t.Parallel()
		tenant := entitlement.Tenant{ID: uuid.New(), Tier: entitlement.TierPro, CountryCode: "IN"}
		d := guard.CheckModuleAccess(policies, svc, tenant, "pos", upgradeURL)
		assert.True(t, d.Allowed())
	})

	t.Run("purchasable addon denies with payment required", func(t *testing.T) {
		t.Parallel()
		tenant := entitlement.Tenant{ID: uuid.New(), Tier: entitlement.TierStarter, CountryCode: "IN"}
		d := guard.CheckModuleAccess(policies, svc, tenant, "pos", upgradeURL)
		assert.Equal(t, guard.CodePaymentRequired, d.Code)
		assert.Equal(t, "/billing/upgrade?module=pos", d.UpgradeURL)
	})

	t.Run("locked tier denies with upgrade link", func(t *testing.T) {
		t.Parallel()
		tenant := entitlement.Tenant{ID: uuid.New(), Tier: entitlement.TierFree, CountryCode: "IN"}
		d := guard.CheckModuleAccess(policies, svc, tenant, "pos", upgradeURL)
		assert.Equal(t, guard.CodePaymentRequired, d.Code)
		assert.NotEmpty(t, d.UpgradeURL)
	})

	t.Run("module offered on no tier is forbidden", func(t *testing.T) {
		t.Parallel()
		tenant := entitlement.Tenant{ID: uuid.New(), Tier: entitlement.TierEnterprise, CountryCode: "IN"}
		d := guard.CheckModuleAccess(policies, svc, tenant, "legacy_reports", upgradeURL)
		assert.Equal(t, guard.CodeForbidden, d.Code)
		assert.Empty(t, d.UpgradeURL)
	})

	t.Run("nil dependencies deny", func(t *testing.T) {
		t.Parallel()
		tenant := entitlement.Tenant{ID: uuid.New(), Tier: entitlement.TierPro, CountryCode: "IN"}
		d := guard.CheckModuleAccess(nil, nil, tenant, "pos", upgradeURL)
		assert.False(t, d.Allowed())
	})
}

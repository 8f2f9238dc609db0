package guard

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/entitlement"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/permission"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/rollout"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/scope"
)

// UpgradeURLFunc builds the client-facing upgrade link for a module
// denial. tier is nil when no tier includes the module (add-on
// purchase instead of plan upgrade).
type UpgradeURLFunc func(moduleID entitlement.ModuleID, tier *entitlement.Tier) string

// CheckPermission evaluates a permission requirement against the
// registry. A nil registry denies: a misconfigured chain must fail
// closed, not open.
func CheckPermission(reg *permission.Registry, actor scope.Actor, perm permission.Permission) Decision {
	if reg == nil || !reg.HasPermission(actor.Role, perm) {
		return Deny(CodeForbidden, "Insufficient permissions")
	}
	return Allow()
}

// CheckSuperAdmin admits only the super admin role itself. It is
// deliberately not derivable from the permission set: an actor holding
// every individual permission still fails this check, keeping a small
// set of irreversible actions single-gated.
func CheckSuperAdmin(actor scope.Actor) Decision {
	if actor.Role != permission.RoleSuperAdmin {
		return Deny(CodeSuperAdminRequired, "Super admin access required")
	}
	return Allow()
}

// CheckTenantScope compares the actor's resolved scope against the
// target tenant. Out-of-scope targets answer NOT_FOUND rather than
// FORBIDDEN so the response does not reveal that the tenant exists.
func CheckTenantScope(actor scope.Actor, tenantID uuid.UUID, tenantCountry string) Decision {
	sc, err := scope.Resolve(actor)
	if err != nil {
		return Deny(CodeUnauthorized, "Authentication required")
	}
	if !sc.AllowsTenant(tenantID, tenantCountry) {
		return NotFound()
	}
	return Allow()
}

// CheckModuleAccess composes the country rollout gate and the
// entitlement matrix, in that order. A module the country has not
// launched denies with COUNTRY_DISABLED before any tier or add-on
// logic runs; a tier/add-on gap denies with PAYMENT_REQUIRED and an
// upgrade link, or FORBIDDEN when no purchase could ever unlock it.
func CheckModuleAccess(
	policies rollout.Provider,
	svc *entitlement.Service,
	tenant entitlement.Tenant,
	moduleID entitlement.ModuleID,
	upgradeURL UpgradeURLFunc,
) Decision {
	if policies == nil || svc == nil {
		return Deny(CodeForbidden, "Insufficient permissions")
	}

	if !policies.IsModuleEnabled(tenant.CountryCode, moduleID) {
		msg := "This module is not yet available in your country"
		if p, ok := policies.Get(tenant.CountryCode); ok && p.ComingSoonMessage != "" {
			msg = p.ComingSoonMessage
		}
		return Deny(CodeCountryDisabled, msg)
	}

	res, err := svc.CheckModuleAccess(tenant, moduleID)
	if err != nil {
		// unclassifiable input: most restrictive applicable outcome
		return Deny(CodeForbidden, "Insufficient permissions")
	}
	if res.Allowed {
		return Allow()
	}

	if res.Reason == entitlement.ReasonNotOffered {
		return Deny(CodeForbidden, fmt.Sprintf("Module %s is not offered on any plan", moduleID))
	}

	var link string
	if upgradeURL != nil {
		link = upgradeURL(moduleID, res.UpgradeTier)
	}
	switch res.Reason {
	case entitlement.ReasonAddonAvailable:
		return PaymentRequired(fmt.Sprintf("Module %s requires an add-on purchase", moduleID), link)
	default:
		return PaymentRequired(fmt.Sprintf("Module %s requires a plan upgrade", moduleID), link)
	}
}

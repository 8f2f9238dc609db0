// Package admin is the mutation surface for platform configuration:
// rollout policies, the entitlement matrix, and add-on grants.
//
// Every mutation here is audited synchronously with previous and new
// values, and applied state without an audit record must never exist.
// Versioned snapshot writes are audited before they are applied; a
// failed audit write aborts them with nothing changed. Add-on writes
// are undone when their audit write fails. Losing the trail for a
// configuration change is treated as worse than refusing the change.
// Route these operations behind guard.RequireSuperAdmin.
package admin

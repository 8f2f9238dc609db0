package admin

import "errors"

// ErrAuditRequired marks a mutation whose audit write failed. The
// caller must treat the mutation as not acknowledged.
var ErrAuditRequired = errors.New("admin.audit_write_required")

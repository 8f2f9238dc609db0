package permission

import "context"

// roleCtxKey is the context key for storing the actor's canonical role.
type roleCtxKey struct{}

// WithRole stores the actor's canonical role in the context.
func WithRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, roleCtxKey{}, role)
}

// RoleFromContext retrieves the actor's canonical role from the context.
func RoleFromContext(ctx context.Context) (Role, bool) {
	role, ok := ctx.Value(roleCtxKey{}).(Role)
	return role, ok
}

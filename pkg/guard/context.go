package guard

import (
	"context"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/scope"
)

// actorCtxKey is the context key for the authenticated actor.
type actorCtxKey struct{}

// WithActor stores the authenticated actor in the context.
func WithActor(ctx context.Context, actor scope.Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actor)
}

// ActorFromContext retrieves the authenticated actor from the context.
func ActorFromContext(ctx context.Context) (scope.Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey{}).(scope.Actor)
	return actor, ok
}

// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// ActorKey is the context key for the acting user.
// Exported so it can be used consistently across packages.
type ActorKey struct{}

// Actor identifies the authenticated user a request runs as.
type Actor struct {
	ID       string
	TenantID string
	Role     string
}

// WithActor returns a context with the acting user embedded.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, ActorKey{}, actor)
}

// ActorFromContext returns the acting user from context, or the zero
// Actor if not set.
func ActorFromContext(ctx context.Context) Actor {
	if v := ctx.Value(ActorKey{}); v != nil {
		return v.(Actor)
	}
	return Actor{}
}

// ActorIDFromContext returns just the acting user's id, or empty
// string if not set. Audit writers use this.
func ActorIDFromContext(ctx context.Context) string {
	return ActorFromContext(ctx).ID
}

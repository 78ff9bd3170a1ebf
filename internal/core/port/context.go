package port

import "context"

type contextKey int

const identityKey contextKey = iota

// ContextWithIdentity attaches an Identity to the context.
func ContextWithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext extracts the Identity from the context.
// Returns nil if no Identity is present.
func IdentityFromContext(ctx context.Context) *Identity {
	identity, _ := ctx.Value(identityKey).(*Identity)
	return identity
}

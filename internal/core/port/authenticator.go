package port

import "context"

// Identity is the caller resolved from a bearer credential.
type Identity struct {
	ID   string
	Role string
}

// HasRole reports whether the identity carries the given role.
func (i *Identity) HasRole(role string) bool {
	return i != nil && i.Role == role
}

// Authenticator validates a Bearer token from an incoming request.
type Authenticator interface {
	// Authenticate validates the token and resolves the caller.
	// Returns (nil, nil) when the token is invalid or expired.
	Authenticate(ctx context.Context, token string) (*Identity, error)
}

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"github.com/guillermoBallester/foodbank/internal/core/port"
)

// Claims is the JWT payload understood by the service. The caller's id is
// read from "sub", falling back to the legacy "id" claim.
type Claims struct {
	UserID string `json:"id,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// subject returns the caller id carried by the claims.
func (c *Claims) subject() string {
	if c.Subject != "" {
		return c.Subject
	}
	return c.UserID
}

// JWTAuthenticator validates HS256-signed bearer tokens.
type JWTAuthenticator struct {
	secret []byte
	issuer string
	logger *slog.Logger
}

// NewJWTAuthenticator creates an authenticator for tokens signed with secret.
// When issuer is non-empty the "iss" claim must match it.
func NewJWTAuthenticator(secret, issuer string, logger *slog.Logger) *JWTAuthenticator {
	return &JWTAuthenticator{
		secret: []byte(secret),
		issuer: issuer,
		logger: logger,
	}
}

// Authenticate verifies the token signature and expiry and returns the caller.
// Invalid tokens yield (nil, nil).
func (a *JWTAuthenticator) Authenticate(ctx context.Context, token string) (*port.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		level := slog.LevelDebug
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			level = slog.LevelWarn
		}
		a.logger.Log(ctx, level, "jwt verification failed",
			slog.String("error", err.Error()),
		)
		return nil, nil
	}

	id := claims.subject()
	if id == "" {
		a.logger.Debug("jwt has no subject")
		return nil, nil
	}

	return &port.Identity{
		ID:   id,
		Role: claims.Role,
	}, nil
}

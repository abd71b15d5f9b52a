// Package auth resolves session cookies to authenticated users. The session
// is a stateless signed token; there is no server-side session table and no
// revocation list, so "sign out" only clears the cookie.
package auth

import (
	"context"

	"notekeeper/internal/security"
	"notekeeper/internal/user/domain"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// UserGetter is the minimal user lookup the resolver needs.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Resolver resolves a session cookie value to the authenticated user.
type Resolver struct {
	tokens *security.TokenCodec
	users  UserGetter
}

// NewResolver returns a Resolver verifying tokens with codec and loading
// users from users.
func NewResolver(tokens *security.TokenCodec, users UserGetter) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

// Resolve returns the projected user for a session cookie value. It returns
// (nil, nil) when the cookie is absent, the token does not verify, or the
// account no longer exists; every failure is uniformly "no identity". An
// error is returned only for store failures.
func (r *Resolver) Resolve(ctx context.Context, cookieValue string) (*domain.User, error) {
	if cookieValue == "" {
		return nil, nil
	}
	claims := r.tokens.Verify(cookieValue)
	if claims == nil {
		return nil, nil
	}
	u, err := r.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	return u, nil
}

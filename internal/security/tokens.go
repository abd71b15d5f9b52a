package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed or invalid.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingSecret is returned when no signing secret is configured.
	// This is a startup precondition, not a per-request condition.
	ErrMissingSecret = errors.New("signing secret is not configured")
)

// DefaultSessionTTL is the session token lifetime: 7 days.
const DefaultSessionTTL = 168 * time.Hour

// SessionClaims holds the JWT claims embedded in a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenCodec signs and verifies stateless session tokens using HS256 with a
// shared secret. The secret is fixed at construction and never mutated, so a
// single codec is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec returns a TokenCodec signing with the given shared secret.
// Returns ErrMissingSecret when secret is empty. A non-positive ttl falls back
// to DefaultSessionTTL.
func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Sign issues a session token for the given user id and role, expiring TTL
// from now.
func (c *TokenCodec) Sign(userID, role string) (string, error) {
	now := time.Now().UTC()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Role: role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify parses and validates the token (signature, exp). Returns nil for any
// failure (malformed token, wrong signature, wrong method, expired, missing
// subject) so callers treat every bad token uniformly as unauthenticated.
func (c *TokenCodec) Verify(tokenString string) *SessionClaims {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		return nil
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil
	}
	if claims.Subject == "" {
		return nil
	}
	return claims
}

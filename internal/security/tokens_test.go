package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewTokenCodec_MissingSecret(t *testing.T) {
	_, err := NewTokenCodec("", 0)
	if !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("NewTokenCodec with empty secret: want ErrMissingSecret, got %v", err)
	}
}

func TestNewTokenCodec_DefaultTTL(t *testing.T) {
	c, err := NewTokenCodec("test-secret", 0)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	if c.TTL() != DefaultSessionTTL {
		t.Errorf("TTL = %v, want %v", c.TTL(), DefaultSessionTTL)
	}
}

func TestTokenCodec_SignAndVerify(t *testing.T) {
	c, err := NewTokenCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	token, err := c.Sign("u1", "ADMIN")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if token == "" {
		t.Fatal("Sign returned empty token")
	}

	claims := c.Verify(token)
	if claims == nil {
		t.Fatal("Verify returned nil for a freshly signed token")
	}
	if claims.Subject != "u1" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "u1")
	}
	if claims.Role != "ADMIN" {
		t.Errorf("Role = %q, want %q", claims.Role, "ADMIN")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("ExpiresAt and IssuedAt should be set")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("expiry window = %v, want %v", got, time.Hour)
	}
}

func TestTokenCodec_VerifyMalformed(t *testing.T) {
	c, _ := NewTokenCodec("test-secret", time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if claims := c.Verify(tok); claims != nil {
			t.Errorf("Verify(%q) should return nil", tok)
		}
	}
}

func TestTokenCodec_VerifyTampered(t *testing.T) {
	c, _ := NewTokenCodec("test-secret", time.Hour)
	token, err := c.Sign("u1", "USER")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	// Flip one byte of the payload.
	b := []byte(token)
	mid := len(b) / 2
	if b[mid] == 'A' {
		b[mid] = 'B'
	} else {
		b[mid] = 'A'
	}
	if claims := c.Verify(string(b)); claims != nil {
		t.Fatal("Verify should return nil for a tampered token")
	}
}

func TestTokenCodec_VerifyWrongSecret(t *testing.T) {
	c1, _ := NewTokenCodec("secret-one", time.Hour)
	c2, _ := NewTokenCodec("secret-two", time.Hour)
	token, err := c1.Sign("u1", "USER")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if claims := c2.Verify(token); claims != nil {
		t.Fatal("Verify with a different secret should return nil")
	}
}

func TestTokenCodec_VerifyExpired(t *testing.T) {
	c, _ := NewTokenCodec("test-secret", time.Hour)
	// Back-date the token past its expiry window.
	issued := time.Now().UTC().Add(-2 * time.Hour)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
		},
		Role: "USER",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}
	if got := c.Verify(token); got != nil {
		t.Fatal("Verify should return nil for an expired token")
	}
}

func TestTokenCodec_VerifyMissingSubject(t *testing.T) {
	c, _ := NewTokenCodec("test-secret", time.Hour)
	token, err := c.Sign("", "USER")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if got := c.Verify(token); got != nil {
		t.Fatal("Verify should return nil when the token has no subject")
	}
}

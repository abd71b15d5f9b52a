package domain

import (
	"errors"
	"strings"
	"time"
)

// User is the core user entity. PasswordHash is only populated on the
// credential path (sign-in); projected reads leave it empty.
type User struct {
	ID           string
	Name         string
	Email        string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole maps a requested role string to a Role. Only "ADMIN"
// (case-insensitive) yields RoleAdmin; everything else is RoleUser.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleUser
}

// IsAdmin reports whether the user carries the administrative override role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Projected returns a copy safe for responses and session resolution:
// id, name, email, and role only, never the password hash.
func (u *User) Projected() *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Validate validates the user for persistence. Returns an error describing the first validation failure.
func (u *User) Validate() error {
	if u.Name == "" {
		return errors.New("name is required")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

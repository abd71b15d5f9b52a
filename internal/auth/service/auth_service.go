package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"notekeeper/internal/platform/apperr"
	"notekeeper/internal/security"
	"notekeeper/internal/user/domain"
)

// Sentinel errors for the auth service; the transport boundary maps their
// kinds to HTTP statuses.
var (
	ErrEmailInUse         = apperr.Conflict("email already in use")
	ErrInvalidCredentials = apperr.Unauthenticated("invalid credentials")
)

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

// AuthService implements sign-up and sign-in: credential hashing and
// verification plus session token minting.
type AuthService struct {
	users  UserRepo
	hasher *security.Hasher
	tokens *security.TokenCodec
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(users UserRepo, hasher *security.Hasher, tokens *security.TokenCodec) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// SignUp creates a user with a hashed password and mints a session token.
// Email is trimmed and lowercased; a requested role of "ADMIN" is honored and
// anything else becomes USER. Returns the projected user and the token.
func (s *AuthService) SignUp(ctx context.Context, name, email, password, role string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" || password == "" {
		return nil, "", apperr.Validation("name, email, and password are required")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailInUse
	}

	hashed, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Role:         domain.ParseRole(role),
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, "", apperr.Validation(err.Error())
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Sign(user.ID, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return user.Projected(), token, nil
}

// SignIn verifies credentials and mints a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", apperr.Validation("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if !s.hasher.Verify(user.PasswordHash, []byte(password)) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(user.ID, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return user.Projected(), token, nil
}

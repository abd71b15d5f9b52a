// Package handler serves the auth endpoints: sign-up, sign-in, and sign-out.
package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"notekeeper/internal/auth"
	"notekeeper/internal/auth/service"
	"notekeeper/internal/platform/apperr"
	"notekeeper/internal/user/domain"
)

// Handler binds HTTP requests to the auth service and manages the session
// cookie on the response.
type Handler struct {
	auth      *service.AuthService
	logger    *zap.Logger
	cookieTTL time.Duration
	secure    bool
}

// New returns an auth Handler. cookieTTL is the session cookie max age;
// secure marks the cookie Secure (production).
func New(authSvc *service.AuthService, logger *zap.Logger, cookieTTL time.Duration, secure bool) *Handler {
	return &Handler{auth: authSvc, logger: logger, cookieTTL: cookieTTL, secure: secure}
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type authResponse struct {
	User userPayload `json:"user"`
}

// SignUp creates an account and signs the caller in via the session cookie.
func (h *Handler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Warn("invalid signup request", zap.Error(err))
		return apperr.Validation("invalid request body")
	}
	user, token, err := h.auth.SignUp(c.Request().Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}
	c.SetCookie(h.sessionCookie(token))
	return c.JSON(http.StatusCreated, authResponse{User: toUserPayload(user)})
}

// SignIn verifies credentials and sets the session cookie.
func (h *Handler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Warn("invalid signin request", zap.Error(err))
		return apperr.Validation("invalid request body")
	}
	user, token, err := h.auth.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	c.SetCookie(h.sessionCookie(token))
	return c.JSON(http.StatusOK, authResponse{User: toUserPayload(user)})
}

// SignOut clears the session cookie. The token itself stays valid until its
// expiry; there is no server-side revocation.
func (h *Handler) SignOut(c echo.Context) error {
	c.SetCookie(h.sessionCookie(""))
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// sessionCookie builds the HTTP-only session cookie. An empty value expires
// the cookie immediately (sign-out).
func (h *Handler) sessionCookie(value string) *http.Cookie {
	maxAge := int(h.cookieTTL / time.Second)
	if value == "" {
		maxAge = -1
	}
	return &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func toUserPayload(u *domain.User) userPayload {
	return userPayload{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

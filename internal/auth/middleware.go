package auth

import (
	"github.com/labstack/echo/v4"

	"notekeeper/internal/user/domain"
)

// identityContextKey is the echo context key holding the authenticated user.
const identityContextKey = "authenticated_user"

// SessionMiddleware returns an Echo middleware that resolves the session
// cookie into the request context. Requests without a valid session proceed
// with no identity; services decide whether authentication is required.
// Only a store failure during resolution aborts the request.
func SessionMiddleware(resolver *Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			value := ""
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				value = cookie.Value
			}
			user, err := resolver.Resolve(c.Request().Context(), value)
			if err != nil {
				return err
			}
			if user != nil {
				c.Set(identityContextKey, user)
			}
			return next(c)
		}
	}
}

// Identity returns the authenticated user from the echo context, or nil when
// the request carries no valid session.
func Identity(c echo.Context) *domain.User {
	u, _ := c.Get(identityContextKey).(*domain.User)
	return u
}

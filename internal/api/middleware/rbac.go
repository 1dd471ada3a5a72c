package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/portail/consulting-portal/internal/core/domain"
)

// RequireRole admits a request only when its session carries the named flag
// set to true. Flags are checked literally: isAdmin does not imply isUser.
// A missing session is unauthenticated; a session without the flag is forbidden.
func RequireRole(key domain.RoleKey) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFrom(c)
			if !sess.Authenticated() {
				return domain.ErrUnauthenticated
			}
			if !sess.Allows(key) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

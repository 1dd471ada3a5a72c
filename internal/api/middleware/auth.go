package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/portail/consulting-portal/internal/core/domain"
)

// SessionKey is the echo context key holding the restored *domain.Session.
const SessionKey = "session"

// SessionRestorer turns a bearer token into the cached session.
type SessionRestorer interface {
	Restore(ctx context.Context, token string) (*domain.Session, error)
}

// Auth restores the session named by the bearer token and injects it into
// the context. Requests without a valid token fail with domain.ErrUnauthenticated.
func Auth(restorer SessionRestorer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return domain.ErrUnauthenticated
			}

			sess, err := restorer.Restore(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the session injected by Auth, or nil.
func SessionFrom(c echo.Context) *domain.Session {
	sess, _ := c.Get(SessionKey).(*domain.Session)
	return sess
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/portail/consulting-portal/internal/api/middleware"
	"github.com/portail/consulting-portal/internal/core/domain"
)

// ctxSession returns the session restored by the Auth middleware. Its
// absence means the route was mounted without Auth and is treated as an
// unauthenticated request.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess := middleware.SessionFrom(c)
	if !sess.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	return sess, nil
}

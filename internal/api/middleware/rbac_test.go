package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/portail/consulting-portal/internal/core/domain"
)

func runGate(t *testing.T, sess *domain.Session, key domain.RoleKey) (bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		c.Set(SessionKey, sess)
	}

	called := false
	err := RequireRole(key)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return called, err
}

func TestRequireRole_Allows(t *testing.T) {
	sess := &domain.Session{ID: "s", User: domain.User{Roles: domain.RoleFlags{IsManager: true}}}

	called, err := runGate(t, sess, domain.KeyManager)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireRole_AdminWithoutUserFlagIsDenied(t *testing.T) {
	sess := &domain.Session{ID: "s", User: domain.User{Roles: domain.RoleFlags{IsAdmin: true}}}

	called, err := runGate(t, sess, domain.KeyUser)
	if called {
		t.Fatalf("should not reach next handler")
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRole_NoSession(t *testing.T) {
	called, err := runGate(t, nil, domain.KeyUser)
	if called {
		t.Fatalf("should not reach next handler")
	}
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRequireRole_SessionWithoutID(t *testing.T) {
	sess := &domain.Session{User: domain.User{Roles: domain.RoleFlags{IsUser: true}}}

	if _, err := runGate(t, sess, domain.KeyUser); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

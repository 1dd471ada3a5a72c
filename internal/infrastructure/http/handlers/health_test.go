package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func serve(t *testing.T, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestLiveness(t *testing.T) {
	rec := serve(t, NewHealthHandler().Liveness)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestReadiness_AllHealthy(t *testing.T) {
	ok := CheckFunc{Label: "mongodb", Fn: func(context.Context) error { return nil }}
	rec := serve(t, NewHealthHandler(ok).Readiness)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Dependencies["mongodb"].Status != "ok" {
		t.Errorf("mongodb = %+v", body.Dependencies["mongodb"])
	}
}

func TestReadiness_DegradedWhenOneCheckFails(t *testing.T) {
	ok := CheckFunc{Label: "mongodb", Fn: func(context.Context) error { return nil }}
	down := CheckFunc{Label: "redis", Fn: func(context.Context) error { return errors.New("connection refused") }}
	rec := serve(t, NewHealthHandler(ok, down).Readiness)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var body readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "degraded" {
		t.Errorf("status = %q, want degraded", body.Status)
	}
	if got := body.Dependencies["redis"]; got.Status != "unhealthy" || got.Error != "connection refused" {
		t.Errorf("redis = %+v", got)
	}
}

func TestNames(t *testing.T) {
	h := NewHealthHandler(
		CheckFunc{Label: "redis"},
		CheckFunc{Label: "mongodb"},
	)
	names := h.Names()
	if len(names) != 2 || names[0] != "mongodb" || names[1] != "redis" {
		t.Errorf("Names() = %v", names)
	}
}

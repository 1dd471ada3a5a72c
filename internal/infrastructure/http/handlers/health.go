package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const readinessTimeout = 3 * time.Second

// Checker reports whether one backing service answers.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckFunc adapts a function to Checker.
type CheckFunc struct {
	Label string
	Fn    func(ctx context.Context) error
}

func (f CheckFunc) Name() string                    { return f.Label }
func (f CheckFunc) Check(ctx context.Context) error { return f.Fn(ctx) }

// MongoCheck pings the server, then the portal database itself.
func MongoCheck(db *mongo.Database) Checker {
	return CheckFunc{Label: "mongodb", Fn: func(ctx context.Context) error {
		if err := db.Client().Ping(ctx, nil); err != nil {
			return err
		}
		return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	}}
}

// RedisCheck pings the session cache.
func RedisCheck(rdb *redis.Client) Checker {
	return CheckFunc{Label: "redis", Fn: func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}}
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	checks []Checker
}

func NewHealthHandler(checks ...Checker) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Liveness handles GET /health. It only confirms the process is alive.
//
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness handles GET /health/ready.
//
// @Summary  Readiness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  readinessResponse
// @Failure  503  {object}  readinessResponse
// @Router   /health/ready [get]
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.checks))
	healthy := true
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			deps[check.Name()] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[check.Name()] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}

// Names lists the registered checks sorted by name.
func (h *HealthHandler) Names() []string {
	names := make([]string, 0, len(h.checks))
	for _, check := range h.checks {
		names = append(names, check.Name())
	}
	sort.Strings(names)
	return names
}

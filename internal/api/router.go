package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/portail/consulting-portal/docs"
	"github.com/portail/consulting-portal/internal/api/handler"
	"github.com/portail/consulting-portal/internal/api/middleware"
	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
	"github.com/portail/consulting-portal/internal/infrastructure/http/handlers"
	"github.com/portail/consulting-portal/internal/infrastructure/storage"
)

const defaultBodyLimit = "32M"

// Services groups the core services exposed over HTTP.
type Services struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Clients  ports.ClientService
	Members  ports.MemberService
	Projects ports.ProjectService
	Export   ports.ExportService
	Calendar ports.CalendarService
}

// Config carries everything NewRouter wires together.
type Config struct {
	Services Services
	Storage  ports.ObjectStorage
	Health   *handlers.HealthHandler
	Log      zerolog.Logger

	// BodyLimit caps request bodies, e.g. "32M". Empty uses 32M.
	BodyLimit string

	// Registerer and Gatherer back the HTTP metrics and /metrics. Nil uses
	// the default Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)
	e.Validator = handler.NewValidator()

	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}
	registerer := cfg.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(cfg.Log))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "portal",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	s := cfg.Services
	auth := middleware.Auth(s.Auth)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(s.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, auth)
	e.GET("/auth/session", authHandler.Session, auth)
	e.PUT("/auth/profile", authHandler.Profile, auth)

	v1 := e.Group("/v1", auth)

	// --- Admin: users ---
	users := handler.NewUserHandler(s.Users)
	admin := v1.Group("/users", middleware.RequireRole(domain.KeyAdmin))
	admin.GET("", users.List)
	admin.POST("", users.Create)
	admin.PUT("/:id/role", users.UpdateRole)
	admin.DELETE("/:id", users.Delete)

	// --- Manager: clients, members, projects ---
	manager := middleware.RequireRole(domain.KeyManager)

	clients := handler.NewClientHandler(s.Clients)
	cg := v1.Group("/clients", manager)
	cg.GET("", clients.List)
	cg.POST("", clients.Create)
	cg.PUT("/:id", clients.Update)
	cg.DELETE("/:id", clients.Delete)

	members := handler.NewMemberHandler(s.Members)
	mg := v1.Group("/members", manager)
	mg.GET("", members.List)
	mg.POST("", members.Create)
	mg.PUT("/:id", members.Update)
	mg.DELETE("/:id", members.Delete)

	projects := handler.NewProjectHandler(s.Projects)
	v1.GET("/projects", projects.List, manager)
	v1.POST("/projects", projects.Create, manager)
	v1.GET("/projects/:id", projects.Get, manager)
	v1.PUT("/projects/:id", projects.Update, manager)
	v1.DELETE("/projects/:id", projects.Delete, manager)

	// --- User: export and calendar ---
	user := middleware.RequireRole(domain.KeyUser)
	v1.GET("/projects/:id/pdf", handler.NewExportHandler(s.Export).ProjectPDF, user)
	v1.GET("/calendar", handler.NewCalendarHandler(s.Calendar).Events, user)

	// --- Stored attachments, linked from records by URL ---
	if cfg.Storage != nil {
		e.GET(storage.FilesRoute+"/*", handler.NewFileHandler(cfg.Storage).Get)
	}

	// --- Health probes (no auth required) ---
	health := cfg.Health
	if health == nil {
		health = handlers.NewHealthHandler()
	}
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger logs one line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= 500:
				ev = log.Error().Err(v.Error)
			case v.Error != nil:
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// Command server runs the consulting portal API.
//
// @title                       Consulting Portal API
// @version                     1.0
// @description                 Portal backend for users, clients, team members and projects.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the session token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/portail/consulting-portal/internal/api"
	"github.com/portail/consulting-portal/internal/core/service"
	"github.com/portail/consulting-portal/internal/infrastructure/db/mongo"
	"github.com/portail/consulting-portal/internal/infrastructure/db/redis"
	"github.com/portail/consulting-portal/internal/infrastructure/http/handlers"
	"github.com/portail/consulting-portal/internal/infrastructure/identity"
	"github.com/portail/consulting-portal/internal/infrastructure/pdf"
	"github.com/portail/consulting-portal/internal/infrastructure/storage"
	"github.com/portail/consulting-portal/internal/pkg/config"
	"github.com/portail/consulting-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "consulting-portal",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Backing services ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "consulting-portal",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}

	cache, err := redis.Open(ctx, redis.Config{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		SessionTTL:   cfg.Redis.SessionTTL,
		ListCacheTTL: cfg.Redis.ListCacheTTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer cache.Close()

	publicURL := cfg.Storage.PublicURL
	if publicURL == "" {
		publicURL = "http://localhost:" + cfg.Port
	}
	objects, err := storage.New(ctx, storage.Config{
		Driver:          cfg.Storage.Driver,
		Dir:             cfg.Storage.Dir,
		PublicURL:       publicURL,
		Bucket:          cfg.Storage.Bucket,
		CredentialsFile: cfg.Storage.CredentialsFile,
	}, db)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("object storage setup failed")
	}

	// --- Adapters ---
	users := mongo.NewUserRepository(db)
	idp := identity.New(mongo.NewCredentialRepository(db), 0)
	lists := cache.Lists
	projectRepo := mongo.NewProjectRepository(db)

	// --- Services ---
	roles, _ := cfg.Auth.RegistrationRoles()
	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET not set, using a random secret; sessions will not survive a restart")
	}

	authService := service.NewAuthService(idp, users, cache.Sessions, objects, service.AuthConfig{
		JWTSecret:    secret,
		TokenTTL:     cfg.Auth.TokenTTL,
		DefaultRoles: roles,
	}, logger.Component("auth"))
	projectService := service.NewProjectService(projectRepo, objects, lists, logger.Component("projects"))

	e := api.NewRouter(api.Config{
		Services: api.Services{
			Auth:     authService,
			Users:    service.NewUserService(idp, users, logger.Component("users")),
			Clients:  service.NewClientService(mongo.NewClientRepository(db), lists, logger.Component("clients")),
			Members:  service.NewMemberService(mongo.NewMemberRepository(db), objects, lists, logger.Component("members")),
			Projects: projectService,
			Export:   service.NewExportService(projectRepo, pdf.NewRenderer(), logger.Component("export")),
			Calendar: service.NewCalendarService(projectService),
		},
		Storage:   objects,
		Health:    handlers.NewHealthHandler(handlers.MongoCheck(db), handlers.RedisCheck(cache.Client)),
		Log:       logger.Component("http"),
		BodyLimit: strconv.FormatInt(cfg.Storage.UploadMaxBytes, 10),
	})

	// --- Serve until signalled ---
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Str("storage", cfg.Storage.Driver).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

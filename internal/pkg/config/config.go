package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/portail/consulting-portal/internal/core/domain"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth    AuthConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Storage StorageConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,    default=24h"`
	// DefaultRoles is a comma list of admin, manager and user granted on sign-up.
	DefaultRoles string `env:"DEFAULT_ROLES, default=user"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=consulting_portal"`
}

type RedisConfig struct {
	Addr         string        `env:"REDIS_ADDR,     default=localhost:6379"`
	Password     string        `env:"REDIS_PASSWORD"`
	DB           int           `env:"REDIS_DB,       default=0"`
	SessionTTL   time.Duration `env:"SESSION_TTL,    default=24h"`
	ListCacheTTL time.Duration `env:"LIST_CACHE_TTL, default=5m"`
}

type StorageConfig struct {
	Driver          string `env:"STORAGE_DRIVER,     default=local"`
	Dir             string `env:"STORAGE_DIR,        default=uploads"`
	PublicURL       string `env:"STORAGE_PUBLIC_URL"`
	Bucket          string `env:"GCS_BUCKET"`
	CredentialsFile string `env:"GCS_CREDENTIALS_FILE"`
	UploadMaxBytes  int64  `env:"UPLOAD_MAX_BYTES,   default=33554432"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads and checks configuration from l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if _, err := cfg.Auth.RegistrationRoles(); err != nil {
		return nil, err
	}
	if cfg.IsProduction() && cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required when ENV=production")
	}
	return &cfg, nil
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production") || strings.EqualFold(c.Env, "prod")
}

// RegistrationRoles parses DefaultRoles.
func (a AuthConfig) RegistrationRoles() (domain.RoleFlags, error) {
	roles, unknown := domain.ParseRoleFlags(a.DefaultRoles)
	if len(unknown) > 0 {
		return domain.RoleFlags{}, fmt.Errorf("DEFAULT_ROLES: unknown role(s) %s", strings.Join(unknown, ", "))
	}
	return roles, nil
}

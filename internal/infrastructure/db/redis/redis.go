package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout = 5 * time.Second
	clientName     = "consulting-portal"
)

// Config holds the connection settings and the lifetimes of the two caches
// the portal keeps in Redis.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds dialing and the startup ping. Zero means 5s.
	Timeout time.Duration

	SessionTTL   time.Duration
	ListCacheTTL time.Duration
}

// Cache bundles the client with the session store and list cache built on it.
type Cache struct {
	Client   *redis.Client
	Sessions *SessionStore
	Lists    *ListCache
}

// Open connects, checks the server with a ping and builds both caches.
func Open(ctx context.Context, cfg Config) (*Cache, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		ClientName:  clientName,
		DialTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return &Cache{
		Client:   client,
		Sessions: NewSessionStore(client, cfg.SessionTTL),
		Lists:    NewListCache(client, cfg.ListCacheTTL),
	}, nil
}

func (c *Cache) Close() error { return c.Client.Close() }

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ListCache keeps collection listings until the next write invalidates them
// or ttl elapses. Every write bumps the collection version, so listings
// stored under an older version are never read again and expire on their own.
// Key format: list:<collection>:<version>, version counter at list:<collection>:version
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	return &ListCache{client: client, ttl: ttl}
}

// Version returns the current version of key. An unset counter is version 0.
func (c *ListCache) Version(ctx context.Context, key string) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(key)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("list cache version: %w", err)
	}
	return v, nil
}

// Get decodes the listing cached under version into dst and reports whether
// it was present.
func (c *ListCache) Get(ctx context.Context, key string, version int64, dst any) (bool, error) {
	b, err := c.client.Get(ctx, listKey(key, version)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("list cache get: %w", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("list cache decode: %w", err)
	}
	return true, nil
}

func (c *ListCache) Set(ctx context.Context, key string, version int64, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("list cache encode: %w", err)
	}
	return c.client.Set(ctx, listKey(key, version), b, c.ttl).Err()
}

func (c *ListCache) Invalidate(ctx context.Context, key string) error {
	return c.client.Incr(ctx, versionKey(key)).Err()
}

func listKey(key string, version int64) string {
	return "list:" + key + ":" + strconv.FormatInt(version, 10)
}

func versionKey(key string) string { return "list:" + key + ":version" }

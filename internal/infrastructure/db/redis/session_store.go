package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/portail/consulting-portal/internal/core/domain"
)

const defaultSessionTTL = 24 * time.Hour

// SessionStore caches session profiles as JSON.
// Key format: session:<session_id>
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore whose entries expire after ttl.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Write(ctx context.Context, sess *domain.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.ID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *SessionStore) Read(ctx context.Context, id string) (*domain.Session, error) {
	b, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *SessionStore) Clear(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func sessionKey(id string) string { return "session:" + id }

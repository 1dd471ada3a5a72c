package ports

import (
	"context"

	"github.com/portail/consulting-portal/internal/core/domain"
)

// UserRepository persists profile documents in the users collection.
// Every Update also refreshes the profile's last-seen timestamp.
type UserRepository interface {
	// Create writes the profile under user.ID, replacing any existing document.
	Create(ctx context.Context, user *domain.User) error
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) error
	Delete(ctx context.Context, id string) error
}

// ClientRepository persists the clients collection.
type ClientRepository interface {
	Insert(ctx context.Context, c *domain.Client) (string, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, id string, patch domain.ClientPatch) error
	Delete(ctx context.Context, id string) error
}

// MemberRepository persists the members collection.
type MemberRepository interface {
	Insert(ctx context.Context, m *domain.Member) (string, error)
	List(ctx context.Context) ([]*domain.Member, error)
	Update(ctx context.Context, id string, patch domain.MemberPatch) error
	Delete(ctx context.Context, id string) error
}

// ProjectRepository persists the projects collection.
type ProjectRepository interface {
	Insert(ctx context.Context, p *domain.Project) (string, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, id string, patch domain.ProjectPatch) error
	// Delete removes the project and reports whether a document existed.
	Delete(ctx context.Context, id string) (bool, error)
}

// SessionRepository caches the last-known session profile.
type SessionRepository interface {
	Write(ctx context.Context, s *domain.Session) error
	// Read returns domain.ErrSessionNotFound when nothing is cached.
	Read(ctx context.Context, id string) (*domain.Session, error)
	Clear(ctx context.Context, id string) error
}

// ListCache stores list responses until the next write to the same collection.
// Entries are stored per version of key; Invalidate advances the version, so a
// listing loaded before a write can never be served after it.
type ListCache interface {
	Version(ctx context.Context, key string) (int64, error)
	Get(ctx context.Context, key string, version int64, dst any) (bool, error)
	Set(ctx context.Context, key string, version int64, value any) error
	Invalidate(ctx context.Context, key string) error
}

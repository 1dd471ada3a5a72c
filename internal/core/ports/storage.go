package ports

import (
	"context"
	"io"

	"github.com/portail/consulting-portal/internal/core/domain"
)

// Object is a stored binary opened for reading.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// ObjectStorage stores uploads by path. Putting the same path twice
// overwrites the first object and yields the same locator.
type ObjectStorage interface {
	Put(ctx context.Context, path string, upload *domain.Upload) (string, error)
	// Get returns domain.ErrObjectNotFound for unknown paths.
	Get(ctx context.Context, path string) (*Object, error)
}

// DocumentRenderer lays out one project as a printable document.
type DocumentRenderer interface {
	RenderProject(p *domain.Project) ([]byte, error)
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

// Local stores objects as files below a root directory.
type Local struct {
	root      string
	publicURL string
}

func NewLocal(root, publicURL string) (*Local, error) {
	if root == "" {
		root = "uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root: %w", err)
	}
	return &Local{root: root, publicURL: publicURL}, nil
}

// Put writes the upload to <root>/<path>, replacing any existing file.
func (l *Local) Put(_ context.Context, p string, u *domain.Upload) (string, error) {
	rel, ok := cleanPath(p)
	if !ok {
		return "", fmt.Errorf("storage: invalid path %q", p)
	}
	full := filepath.Join(l.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage: create dir: %w", err)
	}

	dst, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("storage: create file: %w", err)
	}
	if _, err := io.Copy(dst, u.Body); err != nil {
		_ = dst.Close()
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("storage: close file: %w", err)
	}
	return publicLocator(l.publicURL, rel), nil
}

func (l *Local) Get(_ context.Context, p string) (*ports.Object, error) {
	rel, ok := cleanPath(p)
	if !ok {
		return nil, domain.ErrObjectNotFound
	}
	full := filepath.Join(l.root, filepath.FromSlash(rel))

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrObjectNotFound
		}
		return nil, fmt.Errorf("storage: open file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("storage: stat file: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, domain.ErrObjectNotFound
	}

	return &ports.Object{
		Body:        f,
		ContentType: mime.TypeByExtension(filepath.Ext(rel)),
		Size:        info.Size(),
	}, nil
}

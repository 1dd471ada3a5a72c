package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

const gcsPublicHost = "https://storage.googleapis.com"

// GCS stores objects in a Google Cloud Storage bucket. Locators are public
// object URLs.
type GCS struct {
	client *gcs.Client
	bucket string
}

// NewGCS connects with credentialsFile, or with the ambient credentials when
// it is empty.
func NewGCS(ctx context.Context, bucket, credentialsFile string) (*GCS, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage: gcs driver needs a bucket")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: gcs client: %w", err)
	}
	return &GCS{client: client, bucket: bucket}, nil
}

func (g *GCS) Put(ctx context.Context, p string, u *domain.Upload) (string, error) {
	name, ok := cleanPath(p)
	if !ok {
		return "", fmt.Errorf("storage: invalid path %q", p)
	}

	w := g.client.Bucket(g.bucket).Object(name).NewWriter(ctx)
	w.ContentType = u.ContentType
	if _, err := io.Copy(w, u.Body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("storage: gcs write: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("storage: gcs close: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", gcsPublicHost, g.bucket, name), nil
}

func (g *GCS) Get(ctx context.Context, p string) (*ports.Object, error) {
	name, ok := cleanPath(p)
	if !ok {
		return nil, domain.ErrObjectNotFound
	}

	r, err := g.client.Bucket(g.bucket).Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, domain.ErrObjectNotFound
		}
		return nil, fmt.Errorf("storage: gcs read: %w", err)
	}
	return &ports.Object{Body: r, ContentType: r.Attrs.ContentType, Size: r.Attrs.Size}, nil
}

func (g *GCS) Close() error { return g.client.Close() }

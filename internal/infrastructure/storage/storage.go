// Package storage holds the object storage backends for uploaded
// attachments: local disk, MongoDB GridFS and Google Cloud Storage.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/portail/consulting-portal/internal/core/ports"
)

// Drivers accepted by New.
const (
	DriverLocal  = "local"
	DriverGridFS = "gridfs"
	DriverGCS    = "gcs"
)

// FilesRoute is where the HTTP layer serves objects of the local and
// GridFS backends.
const FilesRoute = "/files"

type Config struct {
	Driver string
	// Dir is the root directory of the local driver.
	Dir string
	// PublicURL prefixes locators of the local and GridFS drivers.
	// Empty yields relative locators such as /files/members/cv.pdf.
	PublicURL string

	Bucket          string
	CredentialsFile string
}

// New builds the backend selected by cfg.Driver. db is only used by GridFS.
func New(ctx context.Context, cfg Config, db *mongo.Database) (ports.ObjectStorage, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverLocal:
		return NewLocal(cfg.Dir, cfg.PublicURL)
	case DriverGridFS:
		if db == nil {
			return nil, fmt.Errorf("storage: gridfs driver needs a database")
		}
		return NewGridFS(db, cfg.PublicURL)
	case DriverGCS:
		return NewGCS(ctx, cfg.Bucket, cfg.CredentialsFile)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

// cleanPath normalises an object path and strips any attempt to climb out
// of the storage root. It reports false for paths that name nothing.
func cleanPath(p string) (string, bool) {
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" || p == "." {
		return "", false
	}
	return p, true
}

// publicLocator is the locator of p served from FilesRoute. Each segment is
// escaped so names such as "my cv #1.pdf" survive as a URL.
func publicLocator(publicURL, p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(publicURL, "/") + FilesRoute + "/" + strings.Join(segments, "/")
}

package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

const gridfsBucket = "attachments"

// GridFS stores objects in a GridFS bucket, one file per path.
type GridFS struct {
	bucket    *gridfs.Bucket
	publicURL string
}

func NewGridFS(db *mongo.Database, publicURL string) (*GridFS, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(gridfsBucket))
	if err != nil {
		return nil, fmt.Errorf("storage: gridfs bucket: %w", err)
	}
	return &GridFS{bucket: bucket, publicURL: publicURL}, nil
}

// Put replaces every stored revision of path with the upload.
func (g *GridFS) Put(ctx context.Context, p string, u *domain.Upload) (string, error) {
	name, ok := cleanPath(p)
	if !ok {
		return "", fmt.Errorf("storage: invalid path %q", p)
	}
	if err := g.remove(ctx, name); err != nil {
		return "", err
	}

	opts := options.GridFSUpload().SetMetadata(bson.M{"contentType": u.ContentType})
	if _, err := g.bucket.UploadFromStream(name, u.Body, opts); err != nil {
		return "", fmt.Errorf("storage: gridfs upload: %w", err)
	}
	return publicLocator(g.publicURL, name), nil
}

func (g *GridFS) Get(_ context.Context, p string) (*ports.Object, error) {
	name, ok := cleanPath(p)
	if !ok {
		return nil, domain.ErrObjectNotFound
	}

	stream, err := g.bucket.OpenDownloadStreamByName(name)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, domain.ErrObjectNotFound
		}
		return nil, fmt.Errorf("storage: gridfs download: %w", err)
	}

	file := stream.GetFile()
	obj := &ports.Object{Body: stream, Size: file.Length}
	if file.Metadata != nil {
		if ct, ok := file.Metadata.Lookup("contentType").StringValueOK(); ok {
			obj.ContentType = ct
		}
	}
	return obj, nil
}

func (g *GridFS) remove(ctx context.Context, name string) error {
	cur, err := g.bucket.FindContext(ctx, bson.M{"filename": name})
	if err != nil {
		return fmt.Errorf("storage: gridfs find: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var f struct {
			ID any `bson:"_id"`
		}
		if err := cur.Decode(&f); err != nil {
			return fmt.Errorf("storage: gridfs decode: %w", err)
		}
		if err := g.bucket.DeleteContext(ctx, f.ID); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
			return fmt.Errorf("storage: gridfs delete: %w", err)
		}
	}
	return cur.Err()
}

package service

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
	"github.com/portail/consulting-portal/internal/pkg/validation"
)

// Cache keys, one per collection.
const (
	cacheKeyClients  = "clients"
	cacheKeyMembers  = "members"
	cacheKeyProjects = "projects"
)

// validate runs the struct rules of v and turns failures into a validation error.
func validate(op string, v any) error {
	msgs, err := validation.Messages(v)
	if err != nil {
		return domain.E(domain.KindValidation, op, "invalid input", err)
	}
	if len(msgs) > 0 {
		return domain.ValidationError(op, msgs)
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// objectPath derives the storage path of an upload from the entity directory
// and the uploaded file name. Equal names map to equal paths.
func objectPath(dir, name string) string {
	base := path.Base("/" + strings.ReplaceAll(name, "\\", "/"))
	if base == "/" || base == "." {
		base = "unnamed"
	}
	return dir + "/" + base
}

// normalizeEmail is the form stored on both the credential and the profile.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// resolveAttachment uploads a pending handle and returns its locator, or
// passes an existing locator through unchanged.
func resolveAttachment(ctx context.Context, store ports.ObjectStorage, dir string, a domain.Attachment) (string, error) {
	if !a.Pending() {
		return a.Locator, nil
	}
	if store == nil {
		return "", domain.E(domain.KindRemote, "upload", "file storage is not configured", nil)
	}
	locator, err := store.Put(ctx, objectPath(dir, a.Upload.Name), a.Upload)
	if err != nil {
		return "", domain.Wrap("upload "+a.Upload.Name, "failed to upload file", err)
	}
	return locator, nil
}

// resolveOptional is resolveAttachment for update patches: absent attachments yield nil.
func resolveOptional(ctx context.Context, store ports.ObjectStorage, dir string, a domain.Attachment) (*string, error) {
	if !a.Present() {
		return nil, nil
	}
	locator, err := resolveAttachment(ctx, store, dir, a)
	if err != nil {
		return nil, err
	}
	return &locator, nil
}

// listCached serves key from cache when possible and fills it on a miss.
// The fill is stored under the version read before loading, so a write that
// lands during the load leaves it unreachable. Cache failures are logged and
// never fail the call.
func listCached[T any](ctx context.Context, cache ports.ListCache, key string, log zerolog.Logger, load func() ([]T, error)) ([]T, error) {
	if cache == nil {
		return load()
	}

	version, err := cache.Version(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("list cache version read failed")
		return load()
	}

	var cached []T
	hit, err := cache.Get(ctx, key, version, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("list cache read failed")
	} else if hit {
		return cached, nil
	}

	items, err := load()
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, key, version, items); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("list cache write failed")
	}
	return items, nil
}

func invalidate(ctx context.Context, cache ports.ListCache, key string, log zerolog.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("list cache invalidation failed")
	}
}

func utcNow() time.Time { return time.Now().UTC() }

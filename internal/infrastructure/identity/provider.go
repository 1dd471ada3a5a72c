// Package identity implements the credential side of authentication:
// email/password records with bcrypt hashes and uuid ids.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/infrastructure/db/mongo"
)

// CredentialStore persists credentials. *mongo.CredentialRepository satisfies it.
type CredentialStore interface {
	Create(ctx context.Context, c *mongo.Credential) error
	FindByEmail(ctx context.Context, email string) (*mongo.Credential, error)
	Set(ctx context.Context, id, field, value string) error
	Delete(ctx context.Context, id string) error
}

// Provider is the identity provider backing sign-up and sign-in.
type Provider struct {
	store CredentialStore
	cost  int
}

// New returns a Provider hashing with cost; zero selects bcrypt.DefaultCost.
func New(store CredentialStore, cost int) *Provider {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Provider{store: store, cost: cost}
}

func (p *Provider) Register(ctx context.Context, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	c := &mongo.Credential{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := p.store.Create(ctx, c); err != nil {
		return "", err
	}
	return c.ID, nil
}

// SignIn returns the credential id. Unknown emails and wrong passwords are
// both reported as domain.ErrInvalidCredentials.
func (p *Provider) SignIn(ctx context.Context, email, password string) (string, error) {
	c, err := p.store.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}
	return c.ID, nil
}

func (p *Provider) UpdateEmail(ctx context.Context, id, email string) error {
	return p.store.Set(ctx, id, "email", normalizeEmail(email))
}

func (p *Provider) UpdatePassword(ctx context.Context, id, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return err
	}
	return p.store.Set(ctx, id, "password_hash", string(hash))
}

func (p *Provider) Delete(ctx context.Context, id string) error {
	return p.store.Delete(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

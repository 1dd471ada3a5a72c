package ports

import "context"

// IdentityProvider owns email/password credentials. Ids it returns are the
// ids of the matching profile documents.
type IdentityProvider interface {
	// Register returns domain.ErrUserExists when the email is taken.
	Register(ctx context.Context, email, password string) (string, error)
	// SignIn returns domain.ErrInvalidCredentials on any mismatch.
	SignIn(ctx context.Context, email, password string) (string, error)
	UpdateEmail(ctx context.Context, id, email string) error
	UpdatePassword(ctx context.Context, id, password string) error
	Delete(ctx context.Context, id string) error
}

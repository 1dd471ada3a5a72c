package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

// UserService implements the admin user-management operations.
type UserService struct {
	identity ports.IdentityProvider
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewUserService(identity ports.IdentityProvider, users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{identity: identity, users: users, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch users")
		return nil, domain.Wrap("list users", "Failed to fetch users", err)
	}
	return users, nil
}

func (s *UserService) UpdateRole(ctx context.Context, id string, roles domain.RoleFlags) error {
	if blank(id) {
		return domain.ErrInvalidID
	}
	if err := s.users.Update(ctx, id, domain.UserPatch{Roles: &roles}); err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("error updating user role")
		return domain.Wrap("update role", "Failed to update user role", err)
	}
	s.log.Info().Str("user_id", id).Str("role", domain.ResolveRole(roles).String()).Msg("user role updated")
	return nil
}

// AddWithAuth creates a credential and writes the given profile under its id.
func (s *UserService) AddWithAuth(ctx context.Context, in ports.NewUserInput) (string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return "", domain.ErrEmptyFields
	}

	id, err := s.identity.Register(ctx, email, in.Password)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("error adding user with auth")
		return "", domain.Wrap("add user", "Failed to add user", err)
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = domain.UsernameFromEmail(email)
	}
	now := utcNow()
	profile := &domain.User{
		ID:        id,
		Username:  username,
		Email:     email,
		Bio:       in.Bio,
		CreatedAt: now,
		LastSeen:  now,
		Roles:     in.Roles,
	}
	if err := s.users.Create(ctx, profile); err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("profile creation failed after credential was created")
		return "", domain.Wrap("add user", "Failed to add user", err)
	}
	return id, nil
}

// Delete removes the credential, then the profile. The two calls are not
// linked: a failure of the second leaves the first applied. A credential that
// is already gone does not block removal of the profile.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if blank(id) {
		return domain.ErrInvalidID
	}
	if err := s.identity.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Error().Err(err).Str("user_id", id).Msg("error deleting credential")
			return domain.Wrap("delete user", "Failed to delete user", err)
		}
		s.log.Warn().Str("user_id", id).Msg("credential already deleted, removing profile")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("credential deleted but profile deletion failed")
		return domain.Wrap("delete user", "Failed to delete user profile", err)
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

// AuthConfig holds the settings of the auth/session gateway.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	// DefaultRoles is granted to every self-registered profile.
	DefaultRoles domain.RoleFlags
}

// AuthService implements sign-up, sign-in, sign-out and session restore.
type AuthService struct {
	identity ports.IdentityProvider
	users    ports.UserRepository
	sessions ports.SessionRepository
	storage  ports.ObjectStorage
	cfg      AuthConfig
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	identity ports.IdentityProvider,
	users ports.UserRepository,
	sessions ports.SessionRepository,
	storage ports.ObjectStorage,
	cfg AuthConfig,
	log zerolog.Logger,
) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &AuthService{
		identity: identity,
		users:    users,
		sessions: sessions,
		storage:  storage,
		cfg:      cfg,
		log:      log,
		now:      utcNow,
	}
}

// Register creates a credential and its profile document. Empty fields and
// mismatched passwords are rejected before the identity provider is called.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if blank(in.Email) || in.Password == "" {
		return nil, domain.ErrEmptyFields
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	email := normalizeEmail(in.Email)
	id, err := s.identity.Register(ctx, email, in.Password)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("register failed")
		return nil, domain.Wrap("register", "failed to create account", err)
	}

	now := s.now()
	username := domain.UsernameFromEmail(email)
	profile := &domain.User{
		ID:        id,
		Username:  username,
		Email:     email,
		IsOnline:  true,
		Bio:       username + ",",
		CreatedAt: now,
		LastSeen:  now,
		Roles:     s.cfg.DefaultRoles,
	}
	if err := s.users.Create(ctx, profile); err != nil {
		// The credential now exists without a profile; nothing rolls it back.
		s.log.Error().Err(err).Str("user_id", id).Msg("profile creation failed after credential was created")
		return nil, domain.Wrap("register", "failed to create profile", err)
	}

	user, notice := s.profileOrDefault(ctx, id)
	s.log.Info().Str("user_id", id).Msg("user registered")
	return s.openSession(ctx, user, notice)
}

// SignIn resolves the credential, marks the profile online and loads it.
// A missing profile yields the default user and a notice instead of an error.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if blank(email) || password == "" {
		return nil, domain.ErrEmptyFields
	}

	id, err := s.identity.SignIn(ctx, normalizeEmail(email), password)
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("sign-in rejected")
		return nil, domain.Wrap("sign in", "failed to sign in", err)
	}

	online := true
	if err := s.users.Update(ctx, id, domain.UserPatch{IsOnline: &online}); err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Error().Err(err).Str("user_id", id).Msg("failed to mark user online")
			return nil, domain.Wrap("sign in", "failed to sign in", err)
		}
	}

	user, notice := s.profileOrDefault(ctx, id)
	s.log.Info().Str("user_id", id).Msg("user signed in")
	return s.openSession(ctx, user, notice)
}

// SignOut clears the online flag unless the account is being deleted and
// always drops the cached session. Failures are only logged.
func (s *AuthService) SignOut(ctx context.Context, sess *domain.Session, deletingAccount bool) {
	if !sess.Authenticated() {
		return
	}

	if !deletingAccount && sess.User.ID != "" {
		offline := false
		if err := s.users.Update(ctx, sess.User.ID, domain.UserPatch{IsOnline: &offline}); err != nil {
			s.log.Error().Err(err).Str("user_id", sess.User.ID).Msg("failed to clear online flag")
		}
	}

	if err := s.sessions.Clear(ctx, sess.ID); err != nil {
		s.log.Error().Err(err).Str("session_id", sess.ID).Msg("failed to clear session")
	}
}

// Restore verifies the token and returns the cached session it points to.
// The cached profile is trusted as stored.
func (s *AuthService) Restore(ctx context.Context, token string) (*domain.Session, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthenticated
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return nil, domain.ErrUnauthenticated
	}

	sess, err := s.sessions.Read(ctx, sid)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, domain.Wrap("restore session", "failed to restore session", err)
	}
	return sess, nil
}

// SaveProfile applies a profile edit, reloads the profile and rewrites the
// cached session.
func (s *AuthService) SaveProfile(ctx context.Context, sess *domain.Session, in ports.ProfileInput) (*domain.Session, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	id := sess.User.ID
	if id == "" {
		return nil, domain.E(domain.KindNotFound, "save profile", "Error: User ID not found", nil)
	}

	var patch domain.UserPatch
	if email := normalizeEmail(in.Email); email != "" {
		if err := s.identity.UpdateEmail(ctx, id, email); err != nil {
			s.log.Error().Err(err).Str("user_id", id).Msg("email update failed")
			return nil, domain.Wrap("save profile", "Error updating email", err)
		}
		patch.Email = &email
	}
	if in.Password != "" {
		if err := s.identity.UpdatePassword(ctx, id, in.Password); err != nil {
			s.log.Error().Err(err).Str("user_id", id).Msg("password update failed")
			return nil, domain.Wrap("save profile", "Error updating password", err)
		}
	}
	if username := strings.TrimSpace(in.Username); username != "" {
		patch.Username = &username
	}
	avatar, err := resolveOptional(ctx, s.storage, domain.DirAvatars, in.Avatar)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("avatar upload failed")
		return nil, err
	}
	patch.Avatar = avatar

	if patch.Email != nil || patch.Username != nil || patch.Avatar != nil {
		if err := s.users.Update(ctx, id, patch); err != nil {
			s.log.Error().Err(err).Str("user_id", id).Msg("profile update failed")
			return nil, domain.Wrap("save profile", "failed to update profile", err)
		}
	}

	user, notice := s.profileOrDefault(ctx, id)
	updated := &domain.Session{ID: sess.ID, User: *user, IssuedAt: sess.IssuedAt, Notice: notice}
	if err := s.sessions.Write(ctx, updated); err != nil {
		s.log.Error().Err(err).Str("session_id", sess.ID).Msg("failed to refresh session cache")
		return nil, domain.Wrap("save profile", "failed to refresh session", err)
	}
	return updated, nil
}

// profileOrDefault loads a profile, falling back to the default user with a
// notice when it is missing or unreadable.
func (s *AuthService) profileOrDefault(ctx context.Context, id string) (*domain.User, string) {
	user, err := s.users.Get(ctx, id)
	if err == nil {
		return user, ""
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		s.log.Warn().Str("user_id", id).Msg("profile not found, using default user")
	} else {
		s.log.Error().Err(err).Str("user_id", id).Msg("profile lookup failed, using default user")
	}
	return domain.DefaultUser(), "getUserInfo: user not found"
}

func (s *AuthService) openSession(ctx context.Context, user *domain.User, notice string) (*ports.AuthResult, error) {
	sess := &domain.Session{
		ID:       uuid.NewString(),
		User:     *user,
		IssuedAt: s.now(),
		Notice:   notice,
	}
	if err := s.sessions.Write(ctx, sess); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to persist session")
		return nil, domain.Wrap("open session", "failed to open session", err)
	}

	token, err := s.generateToken(sess)
	if err != nil {
		return nil, domain.Wrap("open session", "failed to open session", err)
	}
	return &ports.AuthResult{Token: token, Session: sess}, nil
}

func (s *AuthService) generateToken(sess *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sub": sess.User.ID,
		"sid": sess.ID,
		"iat": sess.IssuedAt.Unix(),
		"exp": sess.IssuedAt.Add(s.cfg.TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.JWTSecret))
}

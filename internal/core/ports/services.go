package ports

import (
	"context"
	"time"

	"github.com/portail/consulting-portal/internal/core/domain"
)

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// ProfileInput carries the optional fields of a profile edit.
type ProfileInput struct {
	Email    string
	Username string
	Password string
	Avatar   domain.Attachment
}

// AuthResult is returned by sign-up and sign-in.
type AuthResult struct {
	Token   string
	Session *domain.Session
}

// AuthService is the auth/session gateway.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	SignOut(ctx context.Context, s *domain.Session, deletingAccount bool)
	Restore(ctx context.Context, token string) (*domain.Session, error)
	SaveProfile(ctx context.Context, s *domain.Session, in ProfileInput) (*domain.Session, error)
}

// NewUserInput is the admin form creating a credential and its profile.
type NewUserInput struct {
	Email    string
	Password string
	Username string
	Bio      string
	Roles    domain.RoleFlags
}

// UserService is the admin user-management surface.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id string, roles domain.RoleFlags) error
	AddWithAuth(ctx context.Context, in NewUserInput) (string, error)
	Delete(ctx context.Context, id string) error
}

// ClientService is the client CRUD module.
type ClientService interface {
	Add(ctx context.Context, c domain.Client) (string, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, id string, patch domain.ClientPatch) error
	Delete(ctx context.Context, id string) error
}

// CreateMemberInput is a member record plus its attachments.
type CreateMemberInput struct {
	Member domain.Member
	Files  domain.MemberFiles
}

// UpdateMemberInput is a partial member record plus its attachments.
type UpdateMemberInput struct {
	Patch domain.MemberPatch
	Files domain.MemberFiles
}

// MemberService is the team member CRUD module.
type MemberService interface {
	Add(ctx context.Context, in CreateMemberInput) (string, error)
	List(ctx context.Context) ([]*domain.Member, error)
	Update(ctx context.Context, id string, in UpdateMemberInput) error
	Delete(ctx context.Context, id string) error
}

// CreateProjectInput is a project record plus its attachments.
type CreateProjectInput struct {
	Project domain.Project
	Files   domain.ProjectFiles
}

// UpdateProjectInput is a partial project record plus its attachments.
type UpdateProjectInput struct {
	Patch domain.ProjectPatch
	Files domain.ProjectFiles
}

// ProjectService is the project CRUD module.
type ProjectService interface {
	Add(ctx context.Context, in CreateProjectInput) (string, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, id string, in UpdateProjectInput) error
	// Delete reports whether a project was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

// ExportedDocument is a rendered file ready for download.
type ExportedDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders a single entity for download.
type ExportService interface {
	ProjectPDF(ctx context.Context, id string) (*ExportedDocument, error)
}

// CalendarEvent is one project on the calendar view.
type CalendarEvent struct {
	ProjectID string
	Title     string
	Start     *time.Time
	End       *time.Time
	DaysLeft  *int
	Status    string
}

// CalendarService builds the calendar view of all projects.
type CalendarService interface {
	Events(ctx context.Context, now time.Time) ([]CalendarEvent, error)
}

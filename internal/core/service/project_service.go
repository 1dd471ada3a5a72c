package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

type ProjectService struct {
	repo    ports.ProjectRepository
	storage ports.ObjectStorage
	cache   ports.ListCache
	log     zerolog.Logger
}

// NewProjectService returns the project CRUD module. cache may be nil.
func NewProjectService(repo ports.ProjectRepository, storage ports.ObjectStorage, cache ports.ListCache, log zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, storage: storage, cache: cache, log: log}
}

// Add validates the project, pins the fixed team slots, uploads pending
// attachments under projects/ and stores the record.
func (s *ProjectService) Add(ctx context.Context, in ports.CreateProjectInput) (string, error) {
	p := in.Project
	if err := validate("add project", p); err != nil {
		return "", err
	}
	p.Team = domain.NormalizeTeam(p.Team)

	var err error
	if p.TechnicalOffer, err = resolveAttachment(ctx, s.storage, domain.DirProjects, in.Files.TechnicalOffer); err != nil {
		return "", s.failed("add project", "Failed to add project", err)
	}
	if p.PurchaseOrder, err = resolveAttachment(ctx, s.storage, domain.DirProjects, in.Files.PurchaseOrder); err != nil {
		return "", s.failed("add project", "Failed to add project", err)
	}
	if p.MeetingMinutes, err = resolveAttachment(ctx, s.storage, domain.DirProjects, in.Files.MeetingMinutes); err != nil {
		return "", s.failed("add project", "Failed to add project", err)
	}

	p.ID = ""
	p.CreatedAt = utcNow()
	id, err := s.repo.Insert(ctx, &p)
	if err != nil {
		return "", s.failed("add project", "Failed to add project", err)
	}
	invalidate(ctx, s.cache, cacheKeyProjects, s.log)

	s.log.Info().Str("project_id", id).Str("name", p.Name).Msg("project added")
	return id, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	if blank(id) {
		return nil, domain.ErrInvalidProjectID
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, domain.Wrap("get project", "Failed to fetch project", err)
	}
	return p, nil
}

func (s *ProjectService) List(ctx context.Context) ([]*domain.Project, error) {
	projects, err := listCached(ctx, s.cache, cacheKeyProjects, s.log, func() ([]*domain.Project, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, s.failed("list projects", "Failed to fetch projects", err)
	}
	return projects, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, in ports.UpdateProjectInput) error {
	if blank(id) {
		return domain.ErrInvalidProjectID
	}
	patch := in.Patch
	if err := validate("update project", patch); err != nil {
		return err
	}
	if patch.Team != nil {
		patch.Team = domain.NormalizeTeam(patch.Team)
	}

	var err error
	if patch.TechnicalOffer, err = resolveOptional(ctx, s.storage, domain.DirProjects, in.Files.TechnicalOffer); err != nil {
		return s.failed("update project", "Failed to update project", err)
	}
	if patch.PurchaseOrder, err = resolveOptional(ctx, s.storage, domain.DirProjects, in.Files.PurchaseOrder); err != nil {
		return s.failed("update project", "Failed to update project", err)
	}
	if patch.MeetingMinutes, err = resolveOptional(ctx, s.storage, domain.DirProjects, in.Files.MeetingMinutes); err != nil {
		return s.failed("update project", "Failed to update project", err)
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return s.failed("update project", "Failed to update project", err)
	}
	invalidate(ctx, s.cache, cacheKeyProjects, s.log)
	return nil
}

// Delete removes a project and reports whether one existed. A blank id is
// rejected; an id matching no document is a no-op, not an error.
func (s *ProjectService) Delete(ctx context.Context, id string) (bool, error) {
	if blank(id) {
		return false, domain.ErrInvalidProjectID
	}

	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, s.failed("delete project", "Failed to delete project", err)
	}
	if !existed {
		s.log.Debug().Str("project_id", id).Msg("delete skipped, project does not exist")
		return false, nil
	}
	invalidate(ctx, s.cache, cacheKeyProjects, s.log)

	s.log.Info().Str("project_id", id).Msg("project deleted")
	return true, nil
}

func (s *ProjectService) failed(op, message string, err error) error {
	s.log.Error().Err(err).Str("op", op).Msg(message)
	return domain.Wrap(op, message, err)
}

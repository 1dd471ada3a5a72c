package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

// ExportService renders projects as downloadable documents.
type ExportService struct {
	projects ports.ProjectRepository
	renderer ports.DocumentRenderer
	log      zerolog.Logger
}

func NewExportService(projects ports.ProjectRepository, renderer ports.DocumentRenderer, log zerolog.Logger) *ExportService {
	return &ExportService{projects: projects, renderer: renderer, log: log}
}

func (s *ExportService) ProjectPDF(ctx context.Context, id string) (*ports.ExportedDocument, error) {
	if blank(id) {
		return nil, domain.ErrInvalidProjectID
	}
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, domain.Wrap("export project", "Failed to fetch project", err)
	}

	data, err := s.renderer.RenderProject(p)
	if err != nil {
		s.log.Error().Err(err).Str("project_id", id).Msg("pdf rendering failed")
		return nil, domain.Wrap("export project", "Failed to generate PDF", err)
	}

	return &ports.ExportedDocument{
		Filename:    "Project_Details_" + safeFilename(p.Name) + ".pdf",
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

// safeFilename keeps a project name usable inside a Content-Disposition header.
func safeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "project"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', '\r', '\n', ':', '*', '?', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}

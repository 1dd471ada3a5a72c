package service

import (
	"context"
	"errors"
	"testing"

	"github.com/portail/consulting-portal/internal/core/domain"
)

type stubRenderer struct {
	rendered []*domain.Project
	err      error
}

func (r *stubRenderer) RenderProject(p *domain.Project) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.rendered = append(r.rendered, p)
	return []byte("%PDF-1.3 " + p.Name), nil
}

func TestExportService_ProjectPDF(t *testing.T) {
	repo := newStubProjectRepo()
	repo.items["p1"] = &domain.Project{ID: "p1", Name: "ERP rollout"}
	renderer := &stubRenderer{}
	svc := NewExportService(repo, renderer, discardLogger)

	doc, err := svc.ProjectPDF(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Filename != "Project_Details_ERP rollout.pdf" {
		t.Errorf("filename = %q", doc.Filename)
	}
	if doc.ContentType != "application/pdf" {
		t.Errorf("content type = %q", doc.ContentType)
	}
	if len(doc.Data) == 0 || len(renderer.rendered) != 1 {
		t.Error("renderer not invoked")
	}
}

func TestExportService_UnknownProject(t *testing.T) {
	svc := NewExportService(newStubProjectRepo(), &stubRenderer{}, discardLogger)

	if _, err := svc.ProjectPDF(context.Background(), "nope"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	if _, err := svc.ProjectPDF(context.Background(), ""); !errors.Is(err, domain.ErrInvalidProjectID) {
		t.Fatalf("expected ErrInvalidProjectID, got %v", err)
	}
}

func TestExportService_RendererFailure(t *testing.T) {
	repo := newStubProjectRepo()
	repo.items["p1"] = &domain.Project{ID: "p1", Name: "x"}
	svc := NewExportService(repo, &stubRenderer{err: errBackend}, discardLogger)

	_, err := svc.ProjectPDF(context.Background(), "p1")
	if domain.MessageOf(err, "") != "Failed to generate PDF" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSafeFilename(t *testing.T) {
	if got := safeFilename(`a/b"c`); got != "a_b_c" {
		t.Errorf("safeFilename = %q", got)
	}
	if got := safeFilename("  "); got != "project" {
		t.Errorf("blank name = %q", got)
	}
}

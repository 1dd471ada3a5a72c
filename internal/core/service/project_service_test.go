package service

import (
	"context"
	"errors"
	"testing"

	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

func sampleProject() domain.Project {
	return domain.Project{
		Name:           "ERP rollout",
		Duration:       "6 months",
		CompletionDate: "2026-12-31",
		OrderYear:      "2026",
		StartDate:      "2026-06-01",
		Clients:        []domain.ClientRef{{Name: "Acme", Address: "Casablanca"}},
	}
}

func TestProjectService_AddNormalizesTeam(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, newStubStorage(), nil, discardLogger)

	p := sampleProject()
	p.Team = []domain.TeamMember{
		{Name: "Lead", Role: "Partner"},
		{Name: "Omar", Role: "Something else"},
	}
	id, err := svc.Add(context.Background(), ports.CreateProjectInput{Project: p})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	team := repo.items[id].Team
	if len(team) != 3 {
		t.Fatalf("team has %d slots, want 3", len(team))
	}
	if team[0].Name != "Lead" || team[0].Role != "Partner" {
		t.Errorf("slot 0 = %+v", team[0])
	}
	if team[1].Name != "Omar" || team[1].Role != domain.RoleChefDeProjet || team[1].ChefOfProject != "Yes" {
		t.Errorf("slot 1 = %+v", team[1])
	}
	if team[2].Role != domain.RoleConsultantTechnique || team[2].TechnicalConsultant != "Yes" {
		t.Errorf("slot 2 = %+v", team[2])
	}
}

func TestProjectService_AddThenGetRoundTrip(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, newStubStorage(), nil, discardLogger)
	ctx := context.Background()

	id, err := svc.Add(ctx, ports.CreateProjectInput{
		Project: sampleProject(),
		Files:   domain.ProjectFiles{PurchaseOrder: upload("bdc.pdf", "bdc")},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "ERP rollout" || got.OrderYear != "2026" || len(got.Clients) != 1 {
		t.Errorf("unexpected project: %+v", got)
	}
	if got.PurchaseOrder != "mem://projects/bdc.pdf" {
		t.Errorf("purchase order = %q", got.PurchaseOrder)
	}
}

func TestProjectService_AddRequiresFields(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, newStubStorage(), nil, discardLogger)

	p := sampleProject()
	p.StartDate = "  "
	if _, err := svc.Add(context.Background(), ports.CreateProjectInput{Project: p}); domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Error("invalid project must not be stored")
	}
}

func TestProjectService_DeleteBlankIDIsInvalid(t *testing.T) {
	svc := NewProjectService(newStubProjectRepo(), nil, nil, discardLogger)

	for _, id := range []string{"", "   "} {
		if _, err := svc.Delete(context.Background(), id); !errors.Is(err, domain.ErrInvalidProjectID) {
			t.Errorf("Delete(%q): expected ErrInvalidProjectID, got %v", id, err)
		}
	}
}

func TestProjectService_DeleteMissingIDIsNoop(t *testing.T) {
	cache := newStubCache()
	svc := NewProjectService(newStubProjectRepo(), nil, cache, discardLogger)

	deleted, err := svc.Delete(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if deleted {
		t.Error("nothing existed, delete must not report a removal")
	}
	if len(cache.invalidated) != 0 {
		t.Error("nothing changed, cache should be left alone")
	}
}

func TestProjectService_DeleteExisting(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, newStubStorage(), nil, discardLogger)
	ctx := context.Background()

	id, err := svc.Add(ctx, ports.CreateProjectInput{Project: sampleProject()})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	deleted, err := svc.Delete(ctx, id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Error("delete should report the removal")
	}
	if _, err := svc.Get(ctx, id); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound after delete, got %v", err)
	}
}

func TestProjectService_DeleteFailureIsReported(t *testing.T) {
	repo := newStubProjectRepo()
	repo.deleteErr = errBackend
	svc := NewProjectService(repo, nil, nil, discardLogger)

	if _, err := svc.Delete(context.Background(), "project-1"); domain.KindOf(err) != domain.KindRemote {
		t.Fatalf("expected remote error, got %v", err)
	}
}

func TestProjectService_UpdateNormalizesTeamAndFiles(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, newStubStorage(), nil, discardLogger)
	ctx := context.Background()

	id, err := svc.Add(ctx, ports.CreateProjectInput{Project: sampleProject()})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	err = svc.Update(ctx, id, ports.UpdateProjectInput{
		Patch: domain.ProjectPatch{Team: []domain.TeamMember{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D", Role: "Analyst"}}},
		Files: domain.ProjectFiles{TechnicalOffer: upload("offer.docx", "o")},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	p := repo.items[id]
	if len(p.Team) != 4 || p.Team[3].Role != "Analyst" {
		t.Errorf("team = %+v", p.Team)
	}
	if p.Team[2].Name != "C" || p.Team[2].Role != domain.RoleConsultantTechnique {
		t.Errorf("slot 2 = %+v", p.Team[2])
	}
	if p.TechnicalOffer != "mem://projects/offer.docx" {
		t.Errorf("technical offer = %q", p.TechnicalOffer)
	}

	if err := svc.Update(ctx, "", ports.UpdateProjectInput{}); !errors.Is(err, domain.ErrInvalidProjectID) {
		t.Errorf("expected ErrInvalidProjectID, got %v", err)
	}
}

package pdf

import (
	"bytes"
	"testing"

	"github.com/portail/consulting-portal/internal/core/domain"
)

func TestRenderProject(t *testing.T) {
	p := &domain.Project{
		Name:           "ERP rollout",
		Duration:       "6 months",
		CompletionDate: "2026-12-31",
		OrderYear:      "2026",
		StartDate:      "2026-06-01",
		Clients:        []domain.ClientRef{{Name: "Acme", Address: "Casablanca"}},
		Team:           domain.NormalizeTeam([]domain.TeamMember{{Name: "Lead", Role: "Partner"}}),
	}
	p.ServiceDescription = "Implémentation"

	out, err := NewRenderer().RenderProject(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 16)])
	}
}

func TestRenderProject_LongContentPaginates(t *testing.T) {
	team := make([]domain.TeamMember, 0, 120)
	for i := 0; i < 120; i++ {
		team = append(team, domain.TeamMember{Name: "Consultant", Role: "Analyst"})
	}
	p := &domain.Project{Name: "Big", Team: domain.NormalizeTeam(team)}

	out, err := NewRenderer().RenderProject(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bytes.Count(out, []byte("/Type /Page\n")) < 2 {
		t.Error("expected more than one page")
	}
}

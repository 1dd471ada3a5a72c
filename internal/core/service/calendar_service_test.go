package service

import (
	"context"
	"testing"
	"time"

	"github.com/portail/consulting-portal/internal/core/domain"
)

func TestStatusForDaysLeft(t *testing.T) {
	cases := map[int]string{
		-3: StatusEnded,
		0:  StatusEnded,
		1:  StatusVerySoon,
		2:  StatusSoon,
		7:  StatusSoon,
		8:  StatusUpcoming,
	}
	for days, want := range cases {
		if got := StatusForDaysLeft(days); got != want {
			t.Errorf("StatusForDaysLeft(%d) = %q, want %q", days, got, want)
		}
	}
}

func TestDaysLeftRoundsUp(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	if got := DaysLeft(now.Add(25*time.Hour), now); got != 2 {
		t.Errorf("DaysLeft(+25h) = %d, want 2", got)
	}
	if got := DaysLeft(now.Add(-time.Hour), now); got != 0 {
		t.Errorf("DaysLeft(-1h) = %d, want 0", got)
	}
}

func TestCalendarService_Events(t *testing.T) {
	repo := newStubProjectRepo()
	repo.items["p1"] = &domain.Project{ID: "p1", Name: "Soon", StartDate: "2026-10-01", CompletionDate: "2026-10-18"}
	repo.items["p2"] = &domain.Project{ID: "p2", Name: "Free-form", CompletionDate: "end of Q4"}
	projects := NewProjectService(repo, nil, nil, discardLogger)
	svc := NewCalendarService(projects)

	now := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	events, err := svc.Events(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	byID := map[string]int{}
	for i, ev := range events {
		byID[ev.ProjectID] = i
	}

	soon := events[byID["p1"]]
	if soon.DaysLeft == nil || *soon.DaysLeft != 4 {
		t.Errorf("days left = %v, want 4", soon.DaysLeft)
	}
	if soon.Status != StatusSoon {
		t.Errorf("status = %q, want %q", soon.Status, StatusSoon)
	}
	if soon.Start == nil || soon.Title != "Soon" {
		t.Errorf("unexpected event: %+v", soon)
	}

	free := events[byID["p2"]]
	if free.Status != StatusUnknown || free.DaysLeft != nil || free.End != nil {
		t.Errorf("unparseable date should be unknown: %+v", free)
	}
}

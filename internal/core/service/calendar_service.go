package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

// Calendar statuses by days left until completion.
const (
	StatusEnded    = "Ended"
	StatusVerySoon = "Very Soon"
	StatusSoon     = "Soon"
	StatusUpcoming = "Upcoming"
	StatusUnknown  = "Unknown"
)

// dateLayouts are tried in order on the free-form project date fields.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

type CalendarService struct {
	projects ports.ProjectService
}

func NewCalendarService(projects ports.ProjectService) *CalendarService {
	return &CalendarService{projects: projects}
}

// Events lists every project with its remaining days relative to now.
func (s *CalendarService) Events(ctx context.Context, now time.Time) ([]ports.CalendarEvent, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	events := make([]ports.CalendarEvent, 0, len(projects))
	for _, p := range projects {
		events = append(events, calendarEvent(p, now))
	}
	return events, nil
}

func calendarEvent(p *domain.Project, now time.Time) ports.CalendarEvent {
	ev := ports.CalendarEvent{ProjectID: p.ID, Title: p.Name, Status: StatusUnknown}
	if start, ok := parseDate(p.StartDate); ok {
		ev.Start = &start
	}
	end, ok := parseDate(p.CompletionDate)
	if !ok {
		return ev
	}
	ev.End = &end
	days := DaysLeft(end, now)
	ev.DaysLeft = &days
	ev.Status = StatusForDaysLeft(days)
	return ev
}

// DaysLeft rounds the time until end up to whole days.
func DaysLeft(end, now time.Time) int {
	return int(math.Ceil(end.Sub(now).Hours() / 24))
}

func StatusForDaysLeft(days int) string {
	switch {
	case days <= 0:
		return StatusEnded
	case days <= 1:
		return StatusVerySoon
	case days <= 7:
		return StatusSoon
	default:
		return StatusUpcoming
	}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

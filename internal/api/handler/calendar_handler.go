package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/portail/consulting-portal/internal/core/ports"
)

const dateLayout = "2006-01-02"

type CalendarHandler struct {
	service ports.CalendarService
	now     func() time.Time
}

func NewCalendarHandler(service ports.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: service, now: time.Now}
}

type eventView struct {
	ProjectID string `json:"projectId"`
	Title     string `json:"title"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	DaysLeft  *int   `json:"daysLeft,omitempty"`
	Status    string `json:"status"`
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// Events handles GET /v1/calendar.
//
// @Summary      Project calendar
// @Description  Every project with its completion countdown.
// @Tags         calendar
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  eventView
// @Router       /v1/calendar [get]
func (h *CalendarHandler) Events(c echo.Context) error {
	events, err := h.service.Events(c.Request().Context(), h.now())
	if err != nil {
		return err
	}

	out := make([]eventView, 0, len(events))
	for _, e := range events {
		out = append(out, eventView{
			ProjectID: e.ProjectID,
			Title:     e.Title,
			Start:     formatDate(e.Start),
			End:       formatDate(e.End),
			DaysLeft:  e.DaysLeft,
			Status:    e.Status,
		})
	}
	return c.JSON(http.StatusOK, out)
}

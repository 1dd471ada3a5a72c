package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/portail/consulting-portal/internal/api/metrics"
	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

const entityProject = "project"

// Multipart file fields of a project.
const (
	fieldTechnicalOffer = "technical_offer"
	fieldPurchaseOrder  = "purchase_order"
	fieldMeetingMinutes = "meeting_minutes"
)

type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type projectPatchRequest struct {
	Name                *string              `json:"projectName"`
	Clients             []domain.ClientRef   `json:"clientName"`
	FirmContacts        []domain.FirmContact `json:"mazars"`
	Team                []domain.TeamMember  `json:"interventionTeam"`
	Duration            *string              `json:"projectDuration"`
	CompletionDate      *string              `json:"completionDate"`
	OrderYear           *string              `json:"orderYear"`
	StartDate           *string              `json:"startDate"`
	PartnerNames        *string              `json:"partnerNames"`
	ServiceDescription  *string              `json:"serviceDescription"`
	MissionDeliverables *string              `json:"missionDeliverables"`
	TechnicalOffer      *string              `json:"technicalOffer"`
	PurchaseOrder       *string              `json:"BDC"`
	MeetingMinutes      *string              `json:"PV"`
}

// List handles GET /v1/projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Project
// @Router       /v1/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.List(c.Request().Context())
	metrics.EntityOperationsTotal.WithLabelValues(entityProject, "list", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Get handles GET /v1/projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  map[string]any
// @Router       /v1/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /v1/projects. The record travels in the "data" field
// and attachments in the technical_offer, purchase_order and meeting_minutes parts.
//
// @Summary      Add a project
// @Tags         projects
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        data             formData  string  true   "domain.Project as JSON"
// @Param        technical_offer  formData  file    false  "Technical offer"
// @Param        purchase_order   formData  file    false  "Purchase order (BDC)"
// @Param        meeting_minutes  formData  file    false  "Meeting minutes (PV)"
// @Success      201              {object}  messageResponse
// @Failure      422              {object}  map[string]any
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var p domain.Project
	if err := bindRecord(c, &p); err != nil {
		return err
	}
	files := newFormFiles(c)
	defer files.Close()

	var (
		in  = ports.CreateProjectInput{Project: p}
		err error
	)
	if in.Files.TechnicalOffer, err = files.attachment(fieldTechnicalOffer, p.TechnicalOffer); err != nil {
		return err
	}
	if in.Files.PurchaseOrder, err = files.attachment(fieldPurchaseOrder, p.PurchaseOrder); err != nil {
		return err
	}
	if in.Files.MeetingMinutes, err = files.attachment(fieldMeetingMinutes, p.MeetingMinutes); err != nil {
		return err
	}

	id, err := h.service.Add(c.Request().Context(), in)
	metrics.EntityOperationsTotal.WithLabelValues(entityProject, "add", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created(id, "Project added successfully"))
}

// Update handles PUT /v1/projects/:id.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       mpfd
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id               path      string  true   "Project ID"
// @Param        data             formData  string  false  "projectPatchRequest as JSON"
// @Param        technical_offer  formData  file    false  "Technical offer"
// @Param        purchase_order   formData  file    false  "Purchase order (BDC)"
// @Param        meeting_minutes  formData  file    false  "Meeting minutes (PV)"
// @Success      200              {object}  messageResponse
// @Failure      404              {object}  map[string]any
// @Failure      422              {object}  map[string]any
// @Router       /v1/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	var req projectPatchRequest
	if err := bindRecord(c, &req); err != nil {
		return err
	}
	files := newFormFiles(c)
	defer files.Close()

	in := ports.UpdateProjectInput{Patch: domain.ProjectPatch{
		Name:                req.Name,
		Clients:             req.Clients,
		FirmContacts:        req.FirmContacts,
		Team:                req.Team,
		Duration:            req.Duration,
		CompletionDate:      req.CompletionDate,
		OrderYear:           req.OrderYear,
		StartDate:           req.StartDate,
		PartnerNames:        req.PartnerNames,
		ServiceDescription:  req.ServiceDescription,
		MissionDeliverables: req.MissionDeliverables,
	}}
	var err error
	if in.Files.TechnicalOffer, err = files.optional(fieldTechnicalOffer, req.TechnicalOffer); err != nil {
		return err
	}
	if in.Files.PurchaseOrder, err = files.optional(fieldPurchaseOrder, req.PurchaseOrder); err != nil {
		return err
	}
	if in.Files.MeetingMinutes, err = files.optional(fieldMeetingMinutes, req.MeetingMinutes); err != nil {
		return err
	}

	err = h.service.Update(c.Request().Context(), c.Param("id"), in)
	metrics.EntityOperationsTotal.WithLabelValues(entityProject, "update", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, done("Project updated successfully"))
}

// Delete handles DELETE /v1/projects/:id. An unknown id is answered with an
// info notification instead of a success one.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  messageResponse
// @Failure      422  {object}  map[string]any
// @Router       /v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	deleted, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	metrics.EntityOperationsTotal.WithLabelValues(entityProject, "delete", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	if !deleted {
		return c.JSON(http.StatusOK, messageResponse{Notification: Info("No project to delete")})
	}
	return c.JSON(http.StatusOK, done("Project deleted successfully"))
}

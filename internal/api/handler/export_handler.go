package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/portail/consulting-portal/internal/api/metrics"
	"github.com/portail/consulting-portal/internal/core/ports"
)

type ExportHandler struct {
	service ports.ExportService
}

func NewExportHandler(service ports.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// ProjectPDF handles GET /v1/projects/:id/pdf.
//
// @Summary      Download a project as PDF
// @Tags         projects
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "Project ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  map[string]any
// @Router       /v1/projects/{id}/pdf [get]
func (h *ExportHandler) ProjectPDF(c echo.Context) error {
	doc, err := h.service.ProjectPDF(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	metrics.DocumentsExportedTotal.Inc()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Blob(http.StatusOK, doc.ContentType, doc.Data)
}

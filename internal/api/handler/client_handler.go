package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/portail/consulting-portal/internal/api/metrics"
	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

const entityClient = "client"

type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

type clientRequest struct {
	Name     string `json:"clientName"`
	Sector   string `json:"sector"`
	Location string `json:"location"`
}

type clientPatchRequest struct {
	Name     *string `json:"clientName"`
	Sector   *string `json:"sector"`
	Location *string `json:"location"`
}

// List handles GET /v1/clients.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Client
// @Router       /v1/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.service.List(c.Request().Context())
	metrics.EntityOperationsTotal.WithLabelValues(entityClient, "list", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

// Create handles POST /v1/clients.
//
// @Summary      Add a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clientRequest  true  "Client"
// @Success      201   {object}  messageResponse
// @Failure      422   {object}  map[string]any
// @Router       /v1/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	id, err := h.service.Add(c.Request().Context(), domain.Client{
		Name:     req.Name,
		Sector:   req.Sector,
		Location: req.Location,
	})
	metrics.EntityOperationsTotal.WithLabelValues(entityClient, "add", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created(id, "Client added successfully"))
}

// Update handles PUT /v1/clients/:id. Only the fields sent are changed.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Client ID"
// @Param        body  body      clientPatchRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  map[string]any
// @Failure      422   {object}  map[string]any
// @Router       /v1/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	var req clientPatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.service.Update(c.Request().Context(), c.Param("id"), domain.ClientPatch{
		Name:     req.Name,
		Sector:   req.Sector,
		Location: req.Location,
	})
	metrics.EntityOperationsTotal.WithLabelValues(entityClient, "update", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, done("Client updated successfully"))
}

// Delete handles DELETE /v1/clients/:id.
//
// @Summary      Delete a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]any
// @Router       /v1/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	err := h.service.Delete(c.Request().Context(), c.Param("id"))
	metrics.EntityOperationsTotal.WithLabelValues(entityClient, "delete", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, done("Client deleted successfully"))
}

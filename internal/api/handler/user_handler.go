package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/portail/consulting-portal/internal/api/metrics"
	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

const entityUser = "user"

// UserHandler serves the admin user-management routes.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Email    string           `json:"email"    validate:"required,email"`
	Password string           `json:"password" validate:"required,min=6"`
	Username string           `json:"username"`
	Bio      string           `json:"bio"`
	Roles    domain.RoleFlags `json:"userRole"`
}

type userView struct {
	*domain.User
	Role string `json:"role"`
}

// List handles GET /v1/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userView
// @Failure      403  {object}  map[string]any
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	metrics.EntityOperationsTotal.WithLabelValues(entityUser, "list", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, userView{User: u, Role: u.DisplayRole().String()})
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /v1/users: a credential plus its profile.
//
// @Summary      Create a user with credentials
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  messageResponse
// @Failure      409   {object}  map[string]any
// @Failure      422   {object}  map[string]any
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := h.service.AddWithAuth(c.Request().Context(), ports.NewUserInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		Bio:      req.Bio,
		Roles:    req.Roles,
	})
	metrics.EntityOperationsTotal.WithLabelValues(entityUser, "add", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created(id, "User added successfully"))
}

// UpdateRole handles PUT /v1/users/:id/role.
//
// @Summary      Replace a user's role flags
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "User ID"
// @Param        body  body      domain.RoleFlags  true  "Role flags"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  map[string]any
// @Router       /v1/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var roles domain.RoleFlags
	if err := c.Bind(&roles); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.service.UpdateRole(c.Request().Context(), c.Param("id"), roles)
	metrics.EntityOperationsTotal.WithLabelValues(entityUser, "update", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, done("User role updated successfully"))
}

// Delete handles DELETE /v1/users/:id.
//
// @Summary      Delete a user and its credentials
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]any
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	err := h.service.Delete(c.Request().Context(), c.Param("id"))
	metrics.EntityOperationsTotal.WithLabelValues(entityUser, "delete", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, done("User deleted successfully"))
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/portail/consulting-portal/internal/api/metrics"
	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

const entityMember = "member"

// Multipart file fields of a member.
const (
	fieldCertification = "certification"
	fieldCVShort       = "cv_short"
	fieldCVLong        = "cv_long"
)

type MemberHandler struct {
	service ports.MemberService
}

func NewMemberHandler(service ports.MemberService) *MemberHandler {
	return &MemberHandler{service: service}
}

type memberPatchRequest struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Experience    *string `json:"experience"`
	Position      *string `json:"position"`
	Speciality    *string `json:"speciality"`
	Diploma       *string `json:"diploma"`
	Projects      *string `json:"projects"`
	Service       *string `json:"service"`
	Certification *string `json:"certification"`
	CVShort       *string `json:"cvShort"`
	CVLong        *string `json:"cvLong"`
}

// List handles GET /v1/members.
//
// @Summary      List team members
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Member
// @Router       /v1/members [get]
func (h *MemberHandler) List(c echo.Context) error {
	members, err := h.service.List(c.Request().Context())
	metrics.EntityOperationsTotal.WithLabelValues(entityMember, "list", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, members)
}

// Create handles POST /v1/members. The record travels in the "data" field
// and attachments in the certification, cv_short and cv_long parts.
//
// @Summary      Add a team member
// @Tags         members
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        data           formData  string  true   "domain.Member as JSON"
// @Param        certification  formData  file    false  "Certification document"
// @Param        cv_short       formData  file    false  "Short CV"
// @Param        cv_long        formData  file    false  "Long CV"
// @Success      201            {object}  messageResponse
// @Failure      422            {object}  map[string]any
// @Router       /v1/members [post]
func (h *MemberHandler) Create(c echo.Context) error {
	var m domain.Member
	if err := bindRecord(c, &m); err != nil {
		return err
	}
	files := newFormFiles(c)
	defer files.Close()

	var (
		in  = ports.CreateMemberInput{Member: m}
		err error
	)
	if in.Files.Certification, err = files.attachment(fieldCertification, m.Certification); err != nil {
		return err
	}
	if in.Files.CVShort, err = files.attachment(fieldCVShort, m.CVShort); err != nil {
		return err
	}
	if in.Files.CVLong, err = files.attachment(fieldCVLong, m.CVLong); err != nil {
		return err
	}

	id, err := h.service.Add(c.Request().Context(), in)
	metrics.EntityOperationsTotal.WithLabelValues(entityMember, "add", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created(id, "Member added successfully"))
}

// Update handles PUT /v1/members/:id.
//
// @Summary      Update a team member
// @Tags         members
// @Accept       mpfd
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id             path      string  true   "Member ID"
// @Param        data           formData  string  false  "memberPatchRequest as JSON"
// @Param        certification  formData  file    false  "Certification document"
// @Param        cv_short       formData  file    false  "Short CV"
// @Param        cv_long        formData  file    false  "Long CV"
// @Success      200            {object}  messageResponse
// @Failure      404            {object}  map[string]any
// @Router       /v1/members/{id} [put]
func (h *MemberHandler) Update(c echo.Context) error {
	var req memberPatchRequest
	if err := bindRecord(c, &req); err != nil {
		return err
	}
	files := newFormFiles(c)
	defer files.Close()

	in := ports.UpdateMemberInput{Patch: domain.MemberPatch{
		Name:       req.Name,
		Email:      req.Email,
		Experience: req.Experience,
		Position:   req.Position,
		Speciality: req.Speciality,
		Diploma:    req.Diploma,
		Projects:   req.Projects,
		Service:    req.Service,
	}}
	var err error
	if in.Files.Certification, err = files.optional(fieldCertification, req.Certification); err != nil {
		return err
	}
	if in.Files.CVShort, err = files.optional(fieldCVShort, req.CVShort); err != nil {
		return err
	}
	if in.Files.CVLong, err = files.optional(fieldCVLong, req.CVLong); err != nil {
		return err
	}

	err = h.service.Update(c.Request().Context(), c.Param("id"), in)
	metrics.EntityOperationsTotal.WithLabelValues(entityMember, "update", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, done("Member updated successfully"))
}

// Delete handles DELETE /v1/members/:id.
//
// @Summary      Delete a team member
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Member ID"
// @Success      200  {object}  messageResponse
// @Router       /v1/members/{id} [delete]
func (h *MemberHandler) Delete(c echo.Context) error {
	err := h.service.Delete(c.Request().Context(), c.Param("id"))
	metrics.EntityOperationsTotal.WithLabelValues(entityMember, "delete", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, done("Member deleted successfully"))
}

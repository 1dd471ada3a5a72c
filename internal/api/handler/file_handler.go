package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

type FileHandler struct {
	storage ports.ObjectStorage
}

func NewFileHandler(storage ports.ObjectStorage) *FileHandler {
	return &FileHandler{storage: storage}
}

// Get handles GET /files/*, streaming a stored attachment back.
//
// @Summary      Download an attachment
// @Tags         files
// @Produce      octet-stream
// @Param        path  path  string  true  "Object path"
// @Success      200   {file}    binary
// @Failure      404   {object}  map[string]any
// @Router       /files/{path} [get]
func (h *FileHandler) Get(c echo.Context) error {
	name, err := objectName(c)
	if err != nil {
		return domain.ErrObjectNotFound
	}
	obj, err := h.storage.Get(c.Request().Context(), name)
	if err != nil {
		return err
	}
	defer obj.Body.Close()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	if obj.Size > 0 {
		c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(obj.Size, 10))
	}
	return c.Stream(http.StatusOK, contentType, obj.Body)
}

// objectName is the stored path named by the request. Echo matches on the raw
// path when the request carries one, leaving its escapes in the parameter.
func objectName(c echo.Context) (string, error) {
	name := c.Param("*")
	if c.Request().URL.RawPath == "" {
		return name, nil
	}
	return url.PathUnescape(name)
}

package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/portail/consulting-portal/internal/api/metrics"
	"github.com/portail/consulting-portal/internal/core/domain"
)

// dataField is the multipart field carrying the JSON record.
const dataField = "data"

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// bindRecord decodes the record of a write request: the "data" field of a
// multipart form, or the JSON body otherwise.
func bindRecord(c echo.Context, dst any) error {
	if !isMultipart(c) {
		if err := c.Bind(dst); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		return nil
	}

	data := c.FormValue(dataField)
	if strings.TrimSpace(data) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing data field")
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return nil
}

// formFiles opens the file parts of a multipart request and closes them
// once the write is done.
type formFiles struct {
	c      echo.Context
	opened []multipart.File
}

func newFormFiles(c echo.Context) *formFiles {
	return &formFiles{c: c}
}

// attachment returns the file part named field as a pending upload, or the
// locator carried by the record when no such part was sent.
func (f *formFiles) attachment(field, locator string) (domain.Attachment, error) {
	if !isMultipart(f.c) {
		return domain.LocatorAttachment(locator), nil
	}

	header, err := f.c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return domain.LocatorAttachment(locator), nil
		}
		return domain.Attachment{}, echo.NewHTTPError(http.StatusBadRequest, "invalid file "+field)
	}

	file, err := header.Open()
	if err != nil {
		return domain.Attachment{}, echo.NewHTTPError(http.StatusBadRequest, "unreadable file "+field)
	}
	f.opened = append(f.opened, file)
	metrics.AttachmentsUploadedTotal.WithLabelValues(field).Inc()

	return domain.Attachment{Upload: &domain.Upload{
		Name:        header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Size:        header.Size,
		Body:        file,
	}}, nil
}

// optional is attachment for partial updates, where the record's locator may be absent.
func (f *formFiles) optional(field string, locator *string) (domain.Attachment, error) {
	var loc string
	if locator != nil {
		loc = *locator
	}
	return f.attachment(field, loc)
}

func (f *formFiles) Close() {
	for _, file := range f.opened {
		_ = file.Close()
	}
	f.opened = nil
}

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/portail/consulting-portal/internal/api/handler"
	"github.com/portail/consulting-portal/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error        string               `json:"error"`
	Kind         domain.Kind          `json:"kind"`
	Notification handler.Notification `json:"notification"`
}

var kindStatus = map[domain.Kind]int{
	domain.KindValidation: http.StatusUnprocessableEntity,
	domain.KindCredential: http.StatusUnauthorized,
	domain.KindPermission: http.StatusForbidden,
	domain.KindNotFound:   http.StatusNotFound,
	domain.KindConflict:   http.StatusConflict,
	domain.KindRemote:     http.StatusBadGateway,
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders {"error", "kind", "notification"} for every failure.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, kind, msg := resolveError(err, log, c)
		resp := errorResponse{Error: msg, Kind: kind, Notification: handler.Failure(msg)}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, domain.Kind, string) {
	// Echo's own errors (bind failures, 404 from router, body limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, kindForStatus(he.Code), fmt.Sprintf("%v", he.Message)
	}

	var de *domain.Error
	if errors.As(err, &de) {
		if de.Kind == domain.KindRemote {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("remote operation failed")
		}
		code, ok := kindStatus[de.Kind]
		if !ok {
			code = http.StatusInternalServerError
		}
		return code, de.Kind, domain.MessageOf(err, "request failed")
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, domain.KindRemote, "internal server error"
}

func kindForStatus(code int) domain.Kind {
	for kind, status := range kindStatus {
		if status == code {
			return kind
		}
	}
	if code == http.StatusBadRequest || code == http.StatusRequestEntityTooLarge {
		return domain.KindValidation
	}
	return domain.KindRemote
}

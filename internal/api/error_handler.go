package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/projectpulse/project-system/internal/api/metrics"
	"github.com/projectpulse/project-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the domain failure taxonomy to deterministic HTTP status codes,
//     keeping 401, 403 and 404 strictly distinct.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope with a stable machine-readable kind.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, kind, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg, Kind: kind})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (code int, kind, msg string) {
	// Echo's own errors (bind failures, 404 from router, auth middleware).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, kindForStatus(he.Code), fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated", "authentication required"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden", err.Error()
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "not_found", "task not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "not_found", "user not found"
	case errors.Is(err, domain.ErrTeamNotFound):
		return http.StatusNotFound, "not_found", "team not found"
	case errors.Is(err, domain.ErrMeetingNotFound):
		return http.StatusNotFound, "not_found", "meeting not found"
	case errors.Is(err, domain.ErrNotificationNotFound):
		return http.StatusNotFound, "not_found", "notification not found"
	case errors.Is(err, domain.ErrInvalidTransition):
		metrics.TaskConflictsTotal.Inc()
		return http.StatusConflict, "conflict", err.Error()
	case errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidProgress),
		errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusUnprocessableEntity, "validation", err.Error()
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "conflict", "user already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "unauthenticated", "invalid credentials"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal", "internal server error"
}

func kindForStatus(code int) string {
	switch code {
	case http.StatusUnauthorized:
		return "unauthenticated"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return "validation"
	}
	return ""
}

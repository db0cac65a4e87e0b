package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/projectpulse/project-system/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, body
}

func TestHTTPErrorHandler_Taxonomy(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantKind string
	}{
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{"forbidden", fmt.Errorf("%w: only managers", domain.ErrForbidden), http.StatusForbidden, "forbidden"},
		{"task not found", domain.ErrTaskNotFound, http.StatusNotFound, "not_found"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "not_found"},
		{"notification not found", fmt.Errorf("mark read: %w", domain.ErrNotificationNotFound), http.StatusNotFound, "not_found"},
		{"conflict", fmt.Errorf("%w (from assigned to accepted)", domain.ErrInvalidTransition), http.StatusConflict, "conflict"},
		{"invalid role", domain.ErrInvalidRole, http.StatusUnprocessableEntity, "validation"},
		{"invalid progress", domain.ErrInvalidProgress, http.StatusUnprocessableEntity, "validation"},
		{"invalid status", domain.ErrInvalidStatus, http.StatusUnprocessableEntity, "validation"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "conflict"},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "unauthenticated"},
		{"echo http error", echo.NewHTTPError(http.StatusForbidden, "forbidden"), http.StatusForbidden, "forbidden"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := renderError(t, tc.err)
			if code != tc.wantCode {
				t.Errorf("code = %d, want %d", code, tc.wantCode)
			}
			if body.Kind != tc.wantKind {
				t.Errorf("kind = %q, want %q", body.Kind, tc.wantKind)
			}
			if body.Error == "" {
				t.Error("error message is empty")
			}
		})
	}
}

// Unexpected errors never leak their cause to the client.
func TestHTTPErrorHandler_InternalOpaque(t *testing.T) {
	code, body := renderError(t, fmt.Errorf("mongo: connection reset on host db-primary-0"))
	if code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", code)
	}
	if body.Kind != "internal" {
		t.Errorf("kind = %q, want internal", body.Kind)
	}
	if body.Error != "internal server error" {
		t.Errorf("message = %q, want the opaque message", body.Error)
	}
}

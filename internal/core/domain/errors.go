package domain

import "errors"

// Sentinel errors forming the user-facing failure taxonomy. The central HTTP
// error handler maps each to its status code; anything else is treated as an
// internal failure, logged server-side and surfaced as an opaque 500.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access forbidden")

	ErrTaskNotFound         = errors.New("task not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrMeetingNotFound      = errors.New("meeting not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidProgress   = errors.New("progress must be between 0 and 100")
	ErrInvalidStatus     = errors.New("invalid status")

	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

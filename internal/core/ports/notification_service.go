package ports

import (
	"context"

	"github.com/projectpulse/project-system/internal/core/domain"
)

// DispatchInput carries everything needed to fan a notification out.
type DispatchInput struct {
	Type        domain.NotificationType
	RecipientID string
	Title       string
	Message     string
	Link        string
}

// NotificationService persists and publishes notifications and lets
// recipients read and acknowledge them.
type NotificationService interface {
	// Dispatch persists the notification then publishes it best-effort to
	// the recipient's live channel. A publish failure never rolls back the
	// persisted row.
	Dispatch(ctx context.Context, input DispatchInput) (*domain.Notification, error)
	List(ctx context.Context, actor Actor) ([]*domain.Notification, error)
	// MarkRead is idempotent; re-reading an already-read notification is a
	// no-op success.
	MarkRead(ctx context.Context, actor Actor, notificationID string) error
}

// MeetingService handles invitation responses.
type MeetingService interface {
	Respond(ctx context.Context, actor Actor, meetingID, status string) (*domain.Meeting, error)
}

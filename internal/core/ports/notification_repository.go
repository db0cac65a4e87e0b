package ports

import (
	"context"

	"github.com/projectpulse/project-system/internal/core/domain"
)

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	// FindByRecipient returns the recipient's notifications, newest first.
	FindByRecipient(ctx context.Context, recipientID string) ([]*domain.Notification, error)
	// MarkRead flips is_read on the notification, scoped to the recipient:
	// a row owned by someone else behaves exactly like a missing row
	// (ErrNotificationNotFound) so existence never leaks across users.
	// Marking an already-read row succeeds.
	MarkRead(ctx context.Context, id, recipientID string) error
}

// MeetingRepository defines persistence operations for meetings.
type MeetingRepository interface {
	Create(ctx context.Context, m *domain.Meeting) error
	FindByID(ctx context.Context, id string) (*domain.Meeting, error)
	UpdateStatus(ctx context.Context, id string, status domain.MeetingStatus) error
}

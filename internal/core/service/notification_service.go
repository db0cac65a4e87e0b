package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/projectpulse/project-system/internal/api/metrics"
	"github.com/projectpulse/project-system/internal/core/domain"
	"github.com/projectpulse/project-system/internal/core/ports"
)

// LivePublisher abstracts the bounded best-effort side channel. Enqueue must
// never block; it reports false when the notification was dropped.
type LivePublisher interface {
	Enqueue(n *domain.Notification) bool
}

type notificationService struct {
	repo      ports.NotificationRepository
	publisher LivePublisher
	log       zerolog.Logger
}

// NewNotificationService returns the notification dispatcher. The persisted
// row is the durable record; the live publish is fire-and-forget.
func NewNotificationService(
	repo ports.NotificationRepository,
	publisher LivePublisher,
	log zerolog.Logger,
) ports.NotificationService {
	return &notificationService{repo: repo, publisher: publisher, log: log}
}

// Dispatch persists the notification row, then hands it to the live channel.
// Order matters: a client that misses the push still sees the row on its
// next read.
func (s *notificationService) Dispatch(ctx context.Context, in ports.DispatchInput) (*domain.Notification, error) {
	n := &domain.Notification{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Message:     in.Message,
		RecipientID: in.RecipientID,
		Type:        in.Type,
		Link:        in.Link,
		IsRead:      false,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("dispatch notification: %w", err)
	}
	metrics.NotificationsCreatedTotal.WithLabelValues(string(in.Type)).Inc()

	if !s.publisher.Enqueue(n) {
		metrics.NotificationsDroppedTotal.Inc()
		s.log.Warn().
			Str("notification_id", n.ID).
			Str("recipient_id", n.RecipientID).
			Msg("live channel full, notification dropped from publish queue")
	}

	s.log.Debug().
		Str("notification_id", n.ID).
		Str("type", string(n.Type)).
		Str("recipient_id", n.RecipientID).
		Msg("notification dispatched")

	return n, nil
}

func (s *notificationService) List(ctx context.Context, actor ports.Actor) ([]*domain.Notification, error) {
	return s.repo.FindByRecipient(ctx, actor.ID)
}

// MarkRead flips is_read for the actor's own notification. A row owned by
// another user is reported as not found so existence never leaks.
func (s *notificationService) MarkRead(ctx context.Context, actor ports.Actor, notificationID string) error {
	if err := s.repo.MarkRead(ctx, notificationID, actor.ID); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

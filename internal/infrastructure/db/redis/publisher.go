package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/projectpulse/project-system/internal/core/domain"
)

// Publisher pushes notifications to per-recipient realtime channels.
// Channel format: user-<recipient_id>
type Publisher struct {
	client *redis.Client
}

// NewPublisher creates a Publisher wrapping the given Redis client.
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish serializes the notification and PUBLISHes it on the recipient's
// channel. Connected clients subscribed to their own channel receive it
// live; everyone else reads the persisted row later.
func (p *Publisher) Publish(ctx context.Context, n *domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel(n.RecipientID), payload).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

func (p *Publisher) channel(recipientID string) string {
	return "user-" + recipientID
}

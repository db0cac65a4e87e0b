package ports

import (
	"context"

	"github.com/projectpulse/project-system/internal/core/domain"
)

// RealtimePublisher pushes a persisted notification to the recipient's live
// channel. Delivery is best-effort: failures are logged and dropped, the
// persisted row is the durable fallback.
type RealtimePublisher interface {
	Publish(ctx context.Context, n *domain.Notification) error
}

// IdentityProvider is the external authentication oracle. The core only
// writes back role claims; identity verification happens at the boundary.
type IdentityProvider interface {
	// SetRoleClaim propagates the stored role into the provider's profile
	// claims for the given external subject.
	SetRoleClaim(ctx context.Context, externalID string, role domain.Role) error
}

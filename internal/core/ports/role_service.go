package ports

import (
	"context"

	"github.com/projectpulse/project-system/internal/core/domain"
)

// Profile carries the identity provider's verified claims for lazy creation.
type Profile struct {
	ExternalID string
	Name       string
	Email      string
	Image      string
}

// RoleSyncResult reports one reconciliation batch. Per-user propagation
// failures are accumulated, never fatal.
type RoleSyncResult struct {
	Processed int
	Failures  []BatchFailure
}

// RoleService covers identity resolution and role administration.
type RoleService interface {
	// Resolve maps an external identity to the internal user, creating it
	// lazily with the default role client on first contact.
	Resolve(ctx context.Context, profile Profile) (*domain.User, error)
	// SetRole changes a user's role; manager-only, input validated against
	// the closed enum before any write.
	SetRole(ctx context.Context, actor Actor, targetUserID, newRole string) (*domain.User, error)
	// SyncExternalRoles pushes every stored role into the identity
	// provider's profile claims, tolerating per-user failures.
	SyncExternalRoles(ctx context.Context, actor Actor) (*RoleSyncResult, error)
	// DashboardTasks returns the tasks backing the actor's own dashboard
	// namespace; a namespace other than the actor's role is forbidden.
	DashboardTasks(ctx context.Context, actor Actor, namespace string) ([]*domain.Task, error)
}

// AuthService implements the credentials adapter used when no hosted
// identity provider fronts the service.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

package ports

import (
	"context"

	"github.com/projectpulse/project-system/internal/core/domain"
)

// UserRepository defines persistence operations for users and teams.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByExternalID resolves the identity provider's subject to the
	// internal user record.
	FindByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	// UpsertByExternalID creates the user on first contact and returns the
	// stored record on subsequent calls without overwriting the role.
	UpsertByExternalID(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	FindAll(ctx context.Context) ([]*domain.User, error)

	FindTeamByID(ctx context.Context, id string) (*domain.Team, error)
}

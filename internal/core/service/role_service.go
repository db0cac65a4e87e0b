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

type roleService struct {
	users    ports.UserRepository
	tasks    ports.TaskRepository
	identity ports.IdentityProvider
	notifier ports.NotificationService
	log      zerolog.Logger
}

// NewRoleService returns the identity resolution and role administration
// service.
func NewRoleService(
	users ports.UserRepository,
	tasks ports.TaskRepository,
	identity ports.IdentityProvider,
	notifier ports.NotificationService,
	log zerolog.Logger,
) ports.RoleService {
	return &roleService{users: users, tasks: tasks, identity: identity, notifier: notifier, log: log}
}

// Resolve maps the external subject to the internal user, creating it with
// the default role client on first contact. The stored role always wins over
// anything the token claims.
func (s *roleService) Resolve(ctx context.Context, p ports.Profile) (*domain.User, error) {
	if p.ExternalID == "" {
		return nil, domain.ErrUnauthenticated
	}

	now := time.Now().UTC()
	user, err := s.users.UpsertByExternalID(ctx, &domain.User{
		ID:         uuid.NewString(),
		ExternalID: p.ExternalID,
		Name:       p.Name,
		Email:      p.Email,
		Image:      p.Image,
		Role:       domain.RoleClient,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	return user, nil
}

// SetRole changes the target's role. Manager-only; the input is normalized
// against the closed enum before any write.
func (s *roleService) SetRole(ctx context.Context, actor ports.Actor, targetUserID, newRole string) (*domain.User, error) {
	if err := domain.Authorize(actor.Role, domain.ActionChangeRole, domain.Ownership{ActorID: actor.ID}); err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(newRole)
	if err != nil {
		return nil, err
	}

	target, err := s.users.FindByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateRole(ctx, target.ID, role); err != nil {
		return nil, fmt.Errorf("set role: %w", err)
	}
	target.Role = role

	if _, err := s.notifier.Dispatch(ctx, ports.DispatchInput{
		Type:        domain.NotificationRoleChanged,
		RecipientID: target.ID,
		Title:       "Role updated",
		Message:     fmt.Sprintf("Your role is now %s", role),
	}); err != nil {
		s.log.Warn().Err(err).Str("user_id", target.ID).Msg("role change notification failed")
	}

	s.log.Info().
		Str("user_id", target.ID).
		Str("role", string(role)).
		Str("actor_id", actor.ID).
		Msg("role updated")

	return target, nil
}

// SyncExternalRoles pushes every stored role into the identity provider's
// profile claims. One user's propagation failure never blocks the rest.
func (s *roleService) SyncExternalRoles(ctx context.Context, actor ports.Actor) (*ports.RoleSyncResult, error) {
	if err := domain.Authorize(actor.Role, domain.ActionSyncRoles, domain.Ownership{ActorID: actor.ID}); err != nil {
		return nil, err
	}

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("role sync: %w", err)
	}

	result := &ports.RoleSyncResult{}
	for _, u := range users {
		result.Processed++
		if err := s.identity.SetRoleClaim(ctx, u.ExternalID, u.Role); err != nil {
			metrics.RoleSyncFailuresTotal.Inc()
			s.log.Warn().Err(err).Str("user_id", u.ID).Msg("role sync: claim propagation failed")
			result.Failures = append(result.Failures, ports.BatchFailure{ID: u.ID, Reason: err.Error()})
		}
	}

	s.log.Info().
		Int("processed", result.Processed).
		Int("failed", len(result.Failures)).
		Msg("role sync completed")

	return result, nil
}

// DashboardTasks returns the tasks backing the actor's own dashboard. The
// namespace must match the actor's role exactly.
func (s *roleService) DashboardTasks(ctx context.Context, actor ports.Actor, namespace string) ([]*domain.Task, error) {
	own := domain.Ownership{ActorID: actor.ID, Namespace: namespace}
	if err := domain.Authorize(actor.Role, domain.ActionReadOwnDashboard, own); err != nil {
		return nil, err
	}

	filter := ports.ListTasksFilter{Page: 1, Limit: 100}
	switch actor.Role {
	case domain.RoleEmployee:
		filter.AssigneeID = actor.ID
	case domain.RoleTeamLeader, domain.RoleClient:
		filter.CreatorID = actor.ID
	case domain.RoleManager:
		// managers see everything
	}

	tasks, _, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("dashboard tasks: %w", err)
	}
	return tasks, nil
}

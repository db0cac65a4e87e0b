package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/projectpulse/project-system/internal/api/metrics"
	"github.com/projectpulse/project-system/internal/core/domain"
	"github.com/projectpulse/project-system/internal/core/ports"
)

const maxListLimit = 100

type taskService struct {
	tasks    ports.TaskRepository
	users    ports.UserRepository
	notifier ports.NotificationService
	log      zerolog.Logger
}

// NewTaskService returns the task lifecycle engine. Notifications are
// dispatched after each accepted transition; a notification failure never
// rolls back the transition itself.
func NewTaskService(
	tasks ports.TaskRepository,
	users ports.UserRepository,
	notifier ports.NotificationService,
	log zerolog.Logger,
) ports.TaskService {
	return &taskService{tasks: tasks, users: users, notifier: notifier, log: log}
}

// Create registers a new pending task owned by the acting team leader.
func (s *taskService) Create(ctx context.Context, actor ports.Actor, in ports.CreateTaskInput) (*domain.Task, error) {
	if err := domain.Authorize(actor.Role, domain.ActionAssignTask, domain.Ownership{ActorID: actor.ID}); err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidStatus)
	}

	priority := domain.PriorityMedium
	if in.Priority != "" {
		p, err := domain.ParseTaskPriority(in.Priority)
		if err != nil {
			return nil, err
		}
		priority = p
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.StatusPending,
		Priority:    priority,
		Deadline:    in.Deadline,
		CreatorID:   actor.ID,
		ProjectID:   in.ProjectID,
		TeamID:      in.TeamID,
		CreatedAt:   now,
		UpdatedAt:   now,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusPending, Timestamp: now, ActorID: actor.ID},
		},
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.log.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	s.log.Info().Str("task_id", task.ID).Str("creator_id", actor.ID).Msg("task created")
	return task, nil
}

func (s *taskService) Get(ctx context.Context, _ ports.Actor, taskID string) (*domain.Task, error) {
	return s.tasks.FindByID(ctx, taskID)
}

func (s *taskService) List(ctx context.Context, _ ports.Actor, in ports.ListTasksInput) (*ports.ListTasksResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	items, total, err := s.tasks.List(ctx, ports.ListTasksFilter{
		AssigneeID: in.AssigneeID,
		CreatorID:  in.CreatorID,
		TeamID:     in.TeamID,
		Status:     in.Status,
		Priority:   in.Priority,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListTasksResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Assign moves a pending task to assigned, setting assignee, deadline and
// priority. Team leaders only; the assignee must resolve to a real user.
func (s *taskService) Assign(ctx context.Context, actor ports.Actor, in ports.AssignTaskInput) (*domain.Task, error) {
	if err := domain.Authorize(actor.Role, domain.ActionAssignTask, domain.Ownership{ActorID: actor.ID}); err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}
	if task.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, task.Status, domain.StatusAssigned)
	}

	assignee, err := s.users.FindByID(ctx, in.AssigneeID)
	if err != nil {
		return nil, err
	}

	priority := task.Priority
	if in.Priority != "" {
		priority, err = domain.ParseTaskPriority(in.Priority)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	assigned := domain.StatusAssigned
	update := ports.TaskUpdate{
		Status:       &assigned,
		Priority:     &priority,
		Deadline:     in.Deadline,
		AssigneeID:   &assignee.ID,
		HistoryEntry: &domain.StatusHistoryEntry{Status: assigned, Timestamp: now, ActorID: actor.ID},
	}
	if err := s.tasks.UpdateIfStatus(ctx, task.ID, domain.StatusPending, update); err != nil {
		return nil, fmt.Errorf("assign task: %w", err)
	}
	metrics.TaskTransitionsTotal.WithLabelValues(string(assigned)).Inc()

	s.dispatch(ctx, ports.DispatchInput{
		Type:        domain.NotificationTaskAssigned,
		RecipientID: assignee.ID,
		Title:       "New task assigned",
		Message:     fmt.Sprintf("You have been assigned the task %q", task.Title),
		Link:        "/tasks/" + task.ID,
	})

	s.log.Info().
		Str("task_id", task.ID).
		Str("assignee_id", assignee.ID).
		Str("actor_id", actor.ID).
		Msg("task assigned")

	return s.tasks.FindByID(ctx, task.ID)
}

// Accept moves an assigned task to accepted. Only the assignee may accept;
// accepting a task that is not assigned is a conflict, not a forbidden.
func (s *taskService) Accept(ctx context.Context, actor ports.Actor, taskID string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	own := domain.Ownership{ActorID: actor.ID}
	if task.AssignedToID != nil {
		own.AssigneeID = *task.AssignedToID
	}
	if err := domain.Authorize(actor.Role, domain.ActionAcceptTask, own); err != nil {
		return nil, err
	}
	if task.Status != domain.StatusAssigned {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, task.Status, domain.StatusAccepted)
	}

	now := time.Now().UTC()
	accepted := domain.StatusAccepted
	update := ports.TaskUpdate{
		Status:       &accepted,
		HistoryEntry: &domain.StatusHistoryEntry{Status: accepted, Timestamp: now, ActorID: actor.ID},
	}
	if err := s.tasks.UpdateIfStatus(ctx, task.ID, domain.StatusAssigned, update); err != nil {
		return nil, fmt.Errorf("accept task: %w", err)
	}
	metrics.TaskTransitionsTotal.WithLabelValues(string(accepted)).Inc()

	s.dispatch(ctx, ports.DispatchInput{
		Type:        domain.NotificationTaskAccepted,
		RecipientID: task.CreatorID,
		Title:       "Task accepted",
		Message:     fmt.Sprintf("Your task %q was accepted", task.Title),
		Link:        "/tasks/" + task.ID,
	})

	s.log.Info().Str("task_id", task.ID).Str("actor_id", actor.ID).Msg("task accepted")
	return s.tasks.FindByID(ctx, task.ID)
}

// SetProgress updates the progress field without touching status. Progress
// and status are deliberately independent; reaching 100 does not complete
// the task.
func (s *taskService) SetProgress(ctx context.Context, actor ports.Actor, taskID string, progress int) (*domain.Task, error) {
	if progress < 0 || progress > 100 {
		return nil, domain.ErrInvalidProgress
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	own := domain.Ownership{ActorID: actor.ID}
	if task.TeamID != nil {
		team, err := s.users.FindTeamByID(ctx, *task.TeamID)
		if err != nil {
			return nil, err
		}
		own.TeamLeaderID = team.LeaderID
	}
	if err := domain.Authorize(actor.Role, domain.ActionUpdateProgress, own); err != nil {
		return nil, err
	}
	if task.Status == domain.StatusPending {
		return nil, fmt.Errorf("%w: progress is not tracked on pending tasks", domain.ErrInvalidTransition)
	}

	if err := s.tasks.UpdateProgress(ctx, task.ID, progress); err != nil {
		return nil, fmt.Errorf("set progress: %w", err)
	}

	s.log.Info().Str("task_id", task.ID).Int("progress", progress).Msg("progress updated")
	return s.tasks.FindByID(ctx, task.ID)
}

// SetStatus lets the assignee move their own task along the state machine.
// Moving to done does not force progress to 100.
func (s *taskService) SetStatus(ctx context.Context, actor ports.Actor, taskID string, status string) (*domain.Task, error) {
	newStatus, err := domain.ParseTaskStatus(status)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	own := domain.Ownership{ActorID: actor.ID}
	if task.AssignedToID != nil {
		own.AssigneeID = *task.AssignedToID
	}
	if err := domain.Authorize(actor.Role, domain.ActionSetStatus, own); err != nil {
		return nil, err
	}
	if !task.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, task.Status, newStatus)
	}

	now := time.Now().UTC()
	update := ports.TaskUpdate{
		Status:       &newStatus,
		HistoryEntry: &domain.StatusHistoryEntry{Status: newStatus, Timestamp: now, ActorID: actor.ID},
	}
	if err := s.tasks.UpdateIfStatus(ctx, task.ID, task.Status, update); err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}
	metrics.TaskTransitionsTotal.WithLabelValues(string(newStatus)).Inc()

	s.dispatch(ctx, ports.DispatchInput{
		Type:        domain.NotificationTaskStatus,
		RecipientID: task.CreatorID,
		Title:       "Task status updated",
		Message:     fmt.Sprintf("Task %q is now %s", task.Title, newStatus),
		Link:        "/tasks/" + task.ID,
	})

	s.log.Info().
		Str("task_id", task.ID).
		Str("status", string(newStatus)).
		Str("actor_id", actor.ID).
		Msg("task status updated")

	return s.tasks.FindByID(ctx, task.ID)
}

// Cleanup resets every non-done task whose assignee no longer resolves to an
// existing user back to pending/unassigned. Manager-only batch; per-task
// failures are accumulated, never fatal.
func (s *taskService) Cleanup(ctx context.Context, actor ports.Actor) (*ports.CleanupResult, error) {
	if err := domain.Authorize(actor.Role, domain.ActionCleanupTasks, domain.Ownership{ActorID: actor.ID}); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.FindAssignedActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("cleanup: %w", err)
	}

	result := &ports.CleanupResult{}
	for _, task := range tasks {
		if task.AssignedToID == nil {
			continue
		}
		_, err := s.users.FindByID(ctx, *task.AssignedToID)
		if err == nil {
			continue // assignee still exists, leave the task alone
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			result.Failures = append(result.Failures, ports.BatchFailure{ID: task.ID, Reason: err.Error()})
			continue
		}

		pending := domain.StatusPending
		none := ""
		update := ports.TaskUpdate{
			Status:       &pending,
			AssigneeID:   &none,
			HistoryEntry: &domain.StatusHistoryEntry{Status: pending, Timestamp: time.Now().UTC(), ActorID: actor.ID},
		}
		if err := s.tasks.UpdateIfStatus(ctx, task.ID, task.Status, update); err != nil {
			s.log.Warn().Err(err).Str("task_id", task.ID).Msg("cleanup: failed to reset task")
			result.Failures = append(result.Failures, ports.BatchFailure{ID: task.ID, Reason: err.Error()})
			continue
		}
		result.ResetTaskIDs = append(result.ResetTaskIDs, task.ID)
	}

	s.log.Info().
		Int("reset", len(result.ResetTaskIDs)).
		Int("failed", len(result.Failures)).
		Msg("task cleanup completed")

	return result, nil
}

// dispatch fans out a notification without letting a dispatcher failure undo
// the task mutation that triggered it.
func (s *taskService) dispatch(ctx context.Context, in ports.DispatchInput) {
	if _, err := s.notifier.Dispatch(ctx, in); err != nil {
		s.log.Warn().Err(err).
			Str("type", string(in.Type)).
			Str("recipient_id", in.RecipientID).
			Msg("notification dispatch failed after transition")
	}
}

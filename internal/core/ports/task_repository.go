package ports

import (
	"context"
	"time"

	"github.com/projectpulse/project-system/internal/core/domain"
)

// ListTasksFilter carries all query parameters for listing tasks.
type ListTasksFilter struct {
	AssigneeID string // non-empty = scoped to a single assignee
	CreatorID  string // non-empty = scoped to a single creator
	TeamID     string // non-empty = scoped to a single team
	Status     string // optional: filter by task status
	Priority   string // optional: filter by priority
	Page       int    // 1-based
	Limit      int    // max rows per page (capped at 100 by service)
}

// TaskUpdate carries the fields a conditional update may set. Nil pointers
// leave the stored value untouched.
type TaskUpdate struct {
	Status       *domain.TaskStatus
	Priority     *domain.TaskPriority
	Progress     *int
	Deadline     *time.Time
	AssigneeID   *string // pointer-to-empty clears the assignment
	HistoryEntry *domain.StatusHistoryEntry
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns a page of tasks matching filter and the total count.
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, int64, error)
	// UpdateIfStatus applies update only while the stored status still equals
	// expected, providing optimistic per-document serialization. It returns
	// ErrTaskNotFound when the id does not resolve and ErrInvalidTransition
	// when the task exists but its status moved on.
	UpdateIfStatus(ctx context.Context, id string, expected domain.TaskStatus, update TaskUpdate) error
	// UpdateProgress sets only the progress field; status is untouched.
	UpdateProgress(ctx context.Context, id string, progress int) error
	// FindAssignedActive returns every non-done task that currently has an
	// assignee. Used by the cleanup batch.
	FindAssignedActive(ctx context.Context) ([]*domain.Task, error)
}

package ports

import (
	"context"
	"time"

	"github.com/projectpulse/project-system/internal/core/domain"
)

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	ID   string
	Role domain.Role
}

// CreateTaskInput carries all data needed to create a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    string
	Deadline    *time.Time
	ProjectID   *string
	TeamID      *string
}

// AssignTaskInput carries the assignment parameters for a pending task.
type AssignTaskInput struct {
	TaskID     string
	AssigneeID string
	Deadline   *time.Time
	Priority   string
}

// ListTasksInput carries all parameters for the list endpoint.
type ListTasksInput struct {
	AssigneeID string
	CreatorID  string
	TeamID     string
	Status     string
	Priority   string
	Page       int
	Limit      int
}

// ListTasksResult is returned by ListTasks.
type ListTasksResult struct {
	Items      []*domain.Task
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CleanupResult reports the outcome of one cleanup batch. Failures carry
// per-task errors; a bad row never aborts the batch.
type CleanupResult struct {
	ResetTaskIDs []string
	Failures     []BatchFailure
}

// BatchFailure records a single row's failure inside a batch operation.
type BatchFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// TaskService defines the task lifecycle use cases. Every mutation is one
// atomic read-check-write against the record store.
type TaskService interface {
	Create(ctx context.Context, actor Actor, input CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, actor Actor, taskID string) (*domain.Task, error)
	List(ctx context.Context, actor Actor, input ListTasksInput) (*ListTasksResult, error)
	Assign(ctx context.Context, actor Actor, input AssignTaskInput) (*domain.Task, error)
	Accept(ctx context.Context, actor Actor, taskID string) (*domain.Task, error)
	SetProgress(ctx context.Context, actor Actor, taskID string, progress int) (*domain.Task, error)
	SetStatus(ctx context.Context, actor Actor, taskID string, status string) (*domain.Task, error)
	Cleanup(ctx context.Context, actor Actor) (*CleanupResult, error)
}

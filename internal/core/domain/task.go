package domain

import (
	"strings"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusAssigned   TaskStatus = "assigned"
	StatusAccepted   TaskStatus = "accepted"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// validTransitions defines the allowed state machine transitions. done is
// terminal; pending is reachable again only through the cleanup path, which
// bypasses this table deliberately (it resets orphaned assignments).
var validTransitions = map[TaskStatus][]TaskStatus{
	StatusPending:  {StatusAssigned},
	StatusAssigned: {StatusAccepted},
	StatusAccepted: {StatusInProgress, StatusDone},
	StatusInProgress: {
		StatusDone,
	},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseTaskStatus normalizes a status string against the closed enum.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusAssigned:
		return StatusAssigned, nil
	case StatusAccepted:
		return StatusAccepted, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusDone:
		return StatusDone, nil
	}
	return "", ErrInvalidStatus
}

// TaskPriority represents the urgency assigned alongside a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// ParseTaskPriority normalizes a priority string against the closed enum.
func ParseTaskPriority(s string) (TaskPriority, error) {
	switch TaskPriority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	}
	return "", ErrInvalidStatus
}

// StatusHistoryEntry records a single status transition on a task.
type StatusHistoryEntry struct {
	Status    TaskStatus `json:"status" bson:"status"`
	Timestamp time.Time  `json:"timestamp" bson:"timestamp"`
	ActorID   string     `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
}

// Task is the core aggregate root. It is exclusively owned by the record
// store; services reload, mutate and persist it per request and hold no
// in-process copy across requests.
type Task struct {
	ID            string               `json:"id" bson:"_id,omitempty"`
	Title         string               `json:"title" bson:"title"`
	Description   string               `json:"description,omitempty" bson:"description,omitempty"`
	Status        TaskStatus           `json:"status" bson:"status"`
	Priority      TaskPriority         `json:"priority" bson:"priority"`
	Progress      int                  `json:"progress" bson:"progress"`
	Deadline      *time.Time           `json:"deadline,omitempty" bson:"deadline,omitempty"`
	AssignedToID  *string              `json:"assigned_to_id,omitempty" bson:"assigned_to_id,omitempty"`
	CreatorID     string               `json:"creator_id" bson:"creator_id"`
	ProjectID     *string              `json:"project_id,omitempty" bson:"project_id,omitempty"`
	TeamID        *string              `json:"team_id,omitempty" bson:"team_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at" bson:"updated_at"`
	StatusHistory []StatusHistoryEntry `json:"status_history" bson:"status_history"`
}

package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createTaskRequest struct {
	Title       string     `json:"title"       validate:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	Deadline    *time.Time `json:"deadline"`
	ProjectID   *string    `json:"project_id"`
	TeamID      *string    `json:"team_id"`
}

type assignTaskRequest struct {
	AssigneeID string     `json:"assignee_id" validate:"required"`
	Deadline   *time.Time `json:"deadline"`
	Priority   string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
}

type progressRequest struct {
	// Range is re-checked by the service; the tag catches malformed input early.
	Progress *int `json:"progress" validate:"required,min=0,max=100"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// --- Response types ---

type statusHistoryItemResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   string    `json:"actor_id,omitempty"`
}

type taskResponse struct {
	ID            string                      `json:"id"`
	Title         string                      `json:"title"`
	Description   string                      `json:"description,omitempty"`
	Status        string                      `json:"status"`
	Priority      string                      `json:"priority"`
	Progress      int                         `json:"progress"`
	Deadline      *time.Time                  `json:"deadline,omitempty"`
	AssignedToID  *string                     `json:"assigned_to_id,omitempty"`
	CreatorID     string                      `json:"creator_id"`
	ProjectID     *string                     `json:"project_id,omitempty"`
	TeamID        *string                     `json:"team_id,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
	StatusHistory []statusHistoryItemResponse `json:"status_history,omitempty"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listTasksResponse struct {
	Data       []taskResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type cleanupResponse struct {
	ResetTaskIDs []string           `json:"reset_task_ids"`
	Failures     []batchFailureItem `json:"failures,omitempty"`
}

type batchFailureItem struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

package handler

import (
	"github.com/projectpulse/project-system/internal/core/domain"
	"github.com/projectpulse/project-system/internal/core/ports"
)

// --- Domain → HTTP response ---

func toTaskResponse(t *domain.Task) taskResponse {
	history := make([]statusHistoryItemResponse, len(t.StatusHistory))
	for i, h := range t.StatusHistory {
		history[i] = statusHistoryItemResponse{
			Status:    string(h.Status),
			Timestamp: h.Timestamp.UTC(),
			ActorID:   h.ActorID,
		}
	}
	return taskResponse{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Status:        string(t.Status),
		Priority:      string(t.Priority),
		Progress:      t.Progress,
		Deadline:      t.Deadline,
		AssignedToID:  t.AssignedToID,
		CreatorID:     t.CreatorID,
		ProjectID:     t.ProjectID,
		TeamID:        t.TeamID,
		CreatedAt:     t.CreatedAt.UTC(),
		UpdatedAt:     t.UpdatedAt.UTC(),
		StatusHistory: history,
	}
}

func toListResponse(r *ports.ListTasksResult) listTasksResponse {
	items := make([]taskResponse, len(r.Items))
	for i, t := range r.Items {
		resp := toTaskResponse(t)
		resp.StatusHistory = nil // list payloads stay lightweight
		items[i] = resp
	}
	return listTasksResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}

func toBatchFailures(failures []ports.BatchFailure) []batchFailureItem {
	if len(failures) == 0 {
		return nil
	}
	out := make([]batchFailureItem, len(failures))
	for i, f := range failures {
		out[i] = batchFailureItem{ID: f.ID, Reason: f.Reason}
	}
	return out
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/projectpulse/project-system/internal/core/domain"
	"github.com/projectpulse/project-system/internal/core/ports"
)

// MeetingHandler exposes the invitation-response operation.
type MeetingHandler struct {
	service ports.MeetingService
}

func NewMeetingHandler(service ports.MeetingService) *MeetingHandler {
	return &MeetingHandler{service: service}
}

type meetingResponseRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}

type meetingResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	OrganizerID string    `json:"organizer_id"`
	StartsAt    time.Time `json:"starts_at"`
	Status      string    `json:"status"`
}

func toMeetingResponse(m *domain.Meeting) meetingResponse {
	return meetingResponse{
		ID:          m.ID,
		Title:       m.Title,
		OrganizerID: m.OrganizerID,
		StartsAt:    m.StartsAt.UTC(),
		Status:      string(m.Status),
	}
}

// Respond handles PUT /v1/meetings/:id/response — the invitee accepts or
// declines; the organizer is notified.
//
// @Summary      Respond to a meeting invitation
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Meeting id"
// @Param        body  body      meetingResponseRequest  true  "Response"
// @Success      200   {object}  meetingResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/meetings/{id}/response [put]
func (h *MeetingHandler) Respond(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req meetingResponseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	meeting, err := h.service.Respond(c.Request().Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMeetingResponse(meeting))
}

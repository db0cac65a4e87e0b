package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/projectpulse/project-system/internal/core/domain"
	"github.com/projectpulse/project-system/internal/core/ports"
)

type meetingService struct {
	meetings ports.MeetingRepository
	notifier ports.NotificationService
	log      zerolog.Logger
}

// NewMeetingService returns the meeting response service.
func NewMeetingService(
	meetings ports.MeetingRepository,
	notifier ports.NotificationService,
	log zerolog.Logger,
) ports.MeetingService {
	return &meetingService{meetings: meetings, notifier: notifier, log: log}
}

// Respond records the invitee's accept/decline and notifies the organizer.
func (s *meetingService) Respond(ctx context.Context, actor ports.Actor, meetingID, status string) (*domain.Meeting, error) {
	var newStatus domain.MeetingStatus
	switch domain.MeetingStatus(status) {
	case domain.MeetingAccepted, domain.MeetingDeclined:
		newStatus = domain.MeetingStatus(status)
	default:
		return nil, fmt.Errorf("%w: meeting response must be accepted or declined", domain.ErrInvalidStatus)
	}

	meeting, err := s.meetings.FindByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting.InviteeID != actor.ID {
		return nil, fmt.Errorf("%w: only the invitee can respond", domain.ErrForbidden)
	}

	if err := s.meetings.UpdateStatus(ctx, meeting.ID, newStatus); err != nil {
		return nil, fmt.Errorf("meeting response: %w", err)
	}
	meeting.Status = newStatus

	if _, err := s.notifier.Dispatch(ctx, ports.DispatchInput{
		Type:        domain.NotificationMeetingResponse,
		RecipientID: meeting.OrganizerID,
		Title:       "Meeting response",
		Message:     fmt.Sprintf("Your meeting %q was %s", meeting.Title, newStatus),
		Link:        "/meetings/" + meeting.ID,
	}); err != nil {
		s.log.Warn().Err(err).Str("meeting_id", meeting.ID).Msg("meeting response notification failed")
	}

	s.log.Info().
		Str("meeting_id", meeting.ID).
		Str("status", string(newStatus)).
		Str("actor_id", actor.ID).
		Msg("meeting response recorded")

	return meeting, nil
}

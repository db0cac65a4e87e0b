package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/projectpulse/project-system/internal/core/domain"
	"github.com/projectpulse/project-system/internal/core/ports"
)

func seedMeeting(repo *stubMeetingRepo) *domain.Meeting {
	m := &domain.Meeting{
		ID:          "m1",
		Title:       "sprint review",
		OrganizerID: "leader-1",
		InviteeID:   "emp-1",
		StartsAt:    time.Now().UTC().Add(24 * time.Hour),
		Status:      domain.MeetingPending,
	}
	_ = repo.Create(context.Background(), m)
	return m
}

func TestMeetingService_Respond(t *testing.T) {
	repo := newStubMeetingRepo()
	notifier := &recordingNotifier{}
	svc := NewMeetingService(repo, notifier, discardLogger)
	seedMeeting(repo)

	meeting, err := svc.Respond(context.Background(), ports.Actor{ID: "emp-1", Role: domain.RoleEmployee}, "m1", "accepted")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if meeting.Status != domain.MeetingAccepted {
		t.Errorf("status = %s, want accepted", meeting.Status)
	}
	if got := repo.items["m1"].Status; got != domain.MeetingAccepted {
		t.Errorf("stored status = %s, want accepted", got)
	}

	if len(notifier.dispatched) != 1 {
		t.Fatalf("dispatched %d notifications, want 1", len(notifier.dispatched))
	}
	n := notifier.dispatched[0]
	if n.Type != domain.NotificationMeetingResponse || n.RecipientID != "leader-1" {
		t.Errorf("notification = %+v, want meeting_response to the organizer", n)
	}
}

func TestMeetingService_Respond_InvalidStatus(t *testing.T) {
	repo := newStubMeetingRepo()
	svc := NewMeetingService(repo, &recordingNotifier{}, discardLogger)
	seedMeeting(repo)

	for _, status := range []string{"pending", "maybe", ""} {
		_, err := svc.Respond(context.Background(), ports.Actor{ID: "emp-1"}, "m1", status)
		if !errors.Is(err, domain.ErrInvalidStatus) {
			t.Errorf("status %q: err = %v, want ErrInvalidStatus", status, err)
		}
	}
	if got := repo.items["m1"].Status; got != domain.MeetingPending {
		t.Errorf("stored status = %s, want pending (unchanged)", got)
	}
}

func TestMeetingService_Respond_NotInvitee(t *testing.T) {
	repo := newStubMeetingRepo()
	notifier := &recordingNotifier{}
	svc := NewMeetingService(repo, notifier, discardLogger)
	seedMeeting(repo)

	_, err := svc.Respond(context.Background(), ports.Actor{ID: "emp-2"}, "m1", "declined")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if got := repo.items["m1"].Status; got != domain.MeetingPending {
		t.Errorf("stored status = %s, want pending (unchanged)", got)
	}
	if len(notifier.dispatched) != 0 {
		t.Errorf("dispatched %d notifications, want 0", len(notifier.dispatched))
	}
}

func TestMeetingService_Respond_MissingMeeting(t *testing.T) {
	svc := NewMeetingService(newStubMeetingRepo(), &recordingNotifier{}, discardLogger)

	_, err := svc.Respond(context.Background(), ports.Actor{ID: "emp-1"}, "nope", "accepted")
	if !errors.Is(err, domain.ErrMeetingNotFound) {
		t.Fatalf("err = %v, want ErrMeetingNotFound", err)
	}
}

// A notification failure never undoes the recorded response.
func TestMeetingService_Respond_NotificationFailureIgnored(t *testing.T) {
	repo := newStubMeetingRepo()
	notifier := &recordingNotifier{dispatchErr: errors.New("broker down")}
	svc := NewMeetingService(repo, notifier, discardLogger)
	seedMeeting(repo)

	meeting, err := svc.Respond(context.Background(), ports.Actor{ID: "emp-1"}, "m1", "declined")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if meeting.Status != domain.MeetingDeclined {
		t.Errorf("status = %s, want declined", meeting.Status)
	}
}

package domain

import "time"

// NotificationType identifies what kind of event produced a notification.
type NotificationType string

const (
	NotificationTaskAssigned    NotificationType = "task_assigned"
	NotificationTaskAccepted    NotificationType = "task_accepted"
	NotificationTaskStatus      NotificationType = "task_status"
	NotificationMeetingResponse NotificationType = "meeting_response"
	NotificationRoleChanged     NotificationType = "role_changed"
)

// Notification is owned by its recipient. Only the recipient may flip IsRead;
// no other mutation exists.
type Notification struct {
	ID          string           `json:"id" bson:"_id,omitempty"`
	Title       string           `json:"title" bson:"title"`
	Message     string           `json:"message" bson:"message"`
	RecipientID string           `json:"recipient_id" bson:"recipient_id"`
	Type        NotificationType `json:"type" bson:"type"`
	Link        string           `json:"link,omitempty" bson:"link,omitempty"`
	IsRead      bool             `json:"is_read" bson:"is_read"`
	CreatedAt   time.Time        `json:"created_at" bson:"created_at"`
}

// MeetingStatus tracks an invitee's response to a meeting.
type MeetingStatus string

const (
	MeetingPending  MeetingStatus = "pending"
	MeetingAccepted MeetingStatus = "accepted"
	MeetingDeclined MeetingStatus = "declined"
)

// Meeting models the minimal invitation record needed for response
// notifications to the organizer.
type Meeting struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Title       string        `json:"title" bson:"title"`
	OrganizerID string        `json:"organizer_id" bson:"organizer_id"`
	InviteeID   string        `json:"invitee_id" bson:"invitee_id"`
	StartsAt    time.Time     `json:"starts_at" bson:"starts_at"`
	Status      MeetingStatus `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
}

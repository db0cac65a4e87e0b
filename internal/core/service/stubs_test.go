package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/projectpulse/project-system/internal/core/domain"
	"github.com/projectpulse/project-system/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	tasks     map[string]*domain.Task
	createErr error // if set, Create returns this error
	updateErr error // if set, UpdateIfStatus returns this error
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *t
	r.tasks[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) List(_ context.Context, f ports.ListTasksFilter) ([]*domain.Task, int64, error) {
	var matched []*domain.Task
	for _, t := range r.tasks {
		if f.AssigneeID != "" && (t.AssignedToID == nil || *t.AssignedToID != f.AssigneeID) {
			continue
		}
		if f.CreatorID != "" && t.CreatorID != f.CreatorID {
			continue
		}
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		if f.Priority != "" && string(t.Priority) != f.Priority {
			continue
		}
		clone := *t
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, int64(len(matched)), nil
}

// UpdateIfStatus mirrors the conditional-update semantics of the Mongo repo.
func (r *stubTaskRepo) UpdateIfStatus(_ context.Context, id string, expected domain.TaskStatus, u ports.TaskUpdate) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	t, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if t.Status != expected {
		return domain.ErrInvalidTransition
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Progress != nil {
		t.Progress = *u.Progress
	}
	if u.Deadline != nil {
		d := *u.Deadline
		t.Deadline = &d
	}
	if u.AssigneeID != nil {
		if *u.AssigneeID == "" {
			t.AssignedToID = nil
		} else {
			id := *u.AssigneeID
			t.AssignedToID = &id
		}
	}
	if u.HistoryEntry != nil {
		t.StatusHistory = append(t.StatusHistory, *u.HistoryEntry)
	}
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubTaskRepo) UpdateProgress(_ context.Context, id string, progress int) error {
	t, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	t.Progress = progress
	return nil
}

func (r *stubTaskRepo) FindAssignedActive(_ context.Context) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.AssignedToID != nil && t.Status != domain.StatusDone {
			clone := *t
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubUserRepo struct {
	users map[string]*domain.User
	teams map[string]*domain.Team
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users: make(map[string]*domain.User),
		teams: make(map[string]*domain.Team),
	}
}

func (r *stubUserRepo) add(u *domain.User) { r.users[u.ID] = u }

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	clone := *u
	r.users[u.ID] = &clone
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByExternalID(_ context.Context, externalID string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ExternalID == externalID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpsertByExternalID(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.ExternalID == u.ExternalID {
			existing.Name = u.Name
			existing.Email = u.Email
			existing.Image = u.Image
			clone := *existing
			return &clone, nil
		}
	}
	clone := *u
	r.users[u.ID] = &clone
	return &clone, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) FindTeamByID(_ context.Context, id string) (*domain.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	clone := *t
	return &clone, nil
}

type stubNotificationRepo struct {
	items     map[string]*domain.Notification
	createErr error
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{items: make(map[string]*domain.Notification)}
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *n
	r.items[n.ID] = &clone
	return nil
}

func (r *stubNotificationRepo) FindByRecipient(_ context.Context, recipientID string) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range r.items {
		if n.RecipientID == recipientID {
			clone := *n
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, id, recipientID string) error {
	n, ok := r.items[id]
	if !ok || n.RecipientID != recipientID {
		return domain.ErrNotificationNotFound
	}
	n.IsRead = true
	return nil
}

type stubMeetingRepo struct {
	items map[string]*domain.Meeting
}

func newStubMeetingRepo() *stubMeetingRepo {
	return &stubMeetingRepo{items: make(map[string]*domain.Meeting)}
}

func (r *stubMeetingRepo) Create(_ context.Context, m *domain.Meeting) error {
	clone := *m
	r.items[m.ID] = &clone
	return nil
}

func (r *stubMeetingRepo) FindByID(_ context.Context, id string) (*domain.Meeting, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, domain.ErrMeetingNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *stubMeetingRepo) UpdateStatus(_ context.Context, id string, status domain.MeetingStatus) error {
	m, ok := r.items[id]
	if !ok {
		return domain.ErrMeetingNotFound
	}
	m.Status = status
	return nil
}

// stubPublisher records enqueued notifications; full simulates a saturated
// worker buffer.
type stubPublisher struct {
	enqueued []*domain.Notification
	full     bool
}

func (p *stubPublisher) Enqueue(n *domain.Notification) bool {
	if p.full {
		return false
	}
	p.enqueued = append(p.enqueued, n)
	return true
}

// recordingNotifier captures Dispatch calls made by other services.
type recordingNotifier struct {
	dispatched  []ports.DispatchInput
	dispatchErr error
}

func (n *recordingNotifier) Dispatch(_ context.Context, in ports.DispatchInput) (*domain.Notification, error) {
	if n.dispatchErr != nil {
		return nil, n.dispatchErr
	}
	n.dispatched = append(n.dispatched, in)
	return &domain.Notification{ID: "n1", Type: in.Type, RecipientID: in.RecipientID}, nil
}

func (n *recordingNotifier) List(context.Context, ports.Actor) ([]*domain.Notification, error) {
	return nil, nil
}

func (n *recordingNotifier) MarkRead(context.Context, ports.Actor, string) error {
	return nil
}

// stubIdentityProvider records role claim propagation; failFor makes
// specific external ids fail.
type stubIdentityProvider struct {
	claims  map[string]domain.Role
	failFor map[string]error
}

func newStubIdentityProvider() *stubIdentityProvider {
	return &stubIdentityProvider{
		claims:  make(map[string]domain.Role),
		failFor: make(map[string]error),
	}
}

func (p *stubIdentityProvider) SetRoleClaim(_ context.Context, externalID string, role domain.Role) error {
	if err, ok := p.failFor[externalID]; ok {
		return err
	}
	p.claims[externalID] = role
	return nil
}

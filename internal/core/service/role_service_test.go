package service

import (
	"context"
	"errors"
	"testing"

	"github.com/projectpulse/project-system/internal/core/domain"
	"github.com/projectpulse/project-system/internal/core/ports"
)

func newTestRoleService() (ports.RoleService, *stubUserRepo, *stubTaskRepo, *stubIdentityProvider, *recordingNotifier) {
	users := newStubUserRepo()
	tasks := newStubTaskRepo()
	identity := newStubIdentityProvider()
	notifier := &recordingNotifier{}
	svc := NewRoleService(users, tasks, identity, notifier, discardLogger)
	return svc, users, tasks, identity, notifier
}

func TestRoleService_Resolve_CreatesWithClientRole(t *testing.T) {
	svc, users, _, _, _ := newTestRoleService()

	user, err := svc.Resolve(context.Background(), ports.Profile{
		ExternalID: "ext-1",
		Name:       "Ada",
		Email:      "ada@example.com",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if user.Role != domain.RoleClient {
		t.Errorf("role = %s, want client on first contact", user.Role)
	}
	if len(users.users) != 1 {
		t.Errorf("stored %d users, want 1", len(users.users))
	}
}

// A second resolve for the same subject returns the stored record and never
// downgrades a role a manager already changed.
func TestRoleService_Resolve_KeepsStoredRole(t *testing.T) {
	svc, users, _, _, _ := newTestRoleService()
	users.add(&domain.User{ID: "u1", ExternalID: "ext-1", Role: domain.RoleTeamLeader})

	user, err := svc.Resolve(context.Background(), ports.Profile{ExternalID: "ext-1", Name: "Ada"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("id = %s, want the existing record u1", user.ID)
	}
	if user.Role != domain.RoleTeamLeader {
		t.Errorf("role = %s, want team_leader preserved", user.Role)
	}
}

func TestRoleService_Resolve_MissingSubject(t *testing.T) {
	svc, _, _, _, _ := newTestRoleService()

	_, err := svc.Resolve(context.Background(), ports.Profile{})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestRoleService_SetRole(t *testing.T) {
	svc, users, _, _, notifier := newTestRoleService()
	manager := ports.Actor{ID: "mgr-1", Role: domain.RoleManager}
	users.add(&domain.User{ID: "u1", Role: domain.RoleClient})

	user, err := svc.SetRole(context.Background(), manager, "u1", "Team_Leader")
	if err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	if user.Role != domain.RoleTeamLeader {
		t.Errorf("role = %s, want team_leader", user.Role)
	}
	if got := users.users["u1"].Role; got != domain.RoleTeamLeader {
		t.Errorf("stored role = %s, want team_leader", got)
	}
	if len(notifier.dispatched) != 1 || notifier.dispatched[0].Type != domain.NotificationRoleChanged {
		t.Errorf("dispatched = %+v, want one role_changed notification", notifier.dispatched)
	}
}

func TestRoleService_SetRole_NonManagerForbidden(t *testing.T) {
	svc, users, _, _, _ := newTestRoleService()
	users.add(&domain.User{ID: "u1", Role: domain.RoleClient})

	for _, role := range []domain.Role{domain.RoleTeamLeader, domain.RoleEmployee, domain.RoleClient} {
		_, err := svc.SetRole(context.Background(), ports.Actor{ID: "a1", Role: role}, "u1", "manager")
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("role %s: err = %v, want ErrForbidden", role, err)
		}
	}
	if got := users.users["u1"].Role; got != domain.RoleClient {
		t.Errorf("stored role = %s, want client (unchanged)", got)
	}
}

// Validation runs before any lookup or write.
func TestRoleService_SetRole_UnknownRole(t *testing.T) {
	svc, users, _, _, _ := newTestRoleService()
	manager := ports.Actor{ID: "mgr-1", Role: domain.RoleManager}
	users.add(&domain.User{ID: "u1", Role: domain.RoleClient})

	_, err := svc.SetRole(context.Background(), manager, "u1", "superuser")
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("err = %v, want ErrInvalidRole", err)
	}
	if got := users.users["u1"].Role; got != domain.RoleClient {
		t.Errorf("stored role = %s, want client (unchanged)", got)
	}
}

func TestRoleService_SetRole_MissingTarget(t *testing.T) {
	svc, _, _, _, _ := newTestRoleService()
	manager := ports.Actor{ID: "mgr-1", Role: domain.RoleManager}

	_, err := svc.SetRole(context.Background(), manager, "ghost", "employee")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestRoleService_SyncExternalRoles(t *testing.T) {
	svc, users, _, identity, _ := newTestRoleService()
	manager := ports.Actor{ID: "mgr-1", Role: domain.RoleManager}
	users.add(&domain.User{ID: "u1", ExternalID: "ext-1", Role: domain.RoleEmployee})
	users.add(&domain.User{ID: "u2", ExternalID: "ext-2", Role: domain.RoleTeamLeader})
	users.add(&domain.User{ID: "u3", ExternalID: "ext-3", Role: domain.RoleClient})
	identity.failFor["ext-2"] = errors.New("provider rate limit")

	result, err := svc.SyncExternalRoles(context.Background(), manager)
	if err != nil {
		t.Fatalf("SyncExternalRoles: %v", err)
	}
	if result.Processed != 3 {
		t.Errorf("processed = %d, want 3", result.Processed)
	}
	if len(result.Failures) != 1 || result.Failures[0].ID != "u2" {
		t.Errorf("failures = %+v, want only u2", result.Failures)
	}
	if identity.claims["ext-1"] != domain.RoleEmployee || identity.claims["ext-3"] != domain.RoleClient {
		t.Errorf("claims = %+v, want ext-1 and ext-3 propagated", identity.claims)
	}
}

func TestRoleService_SyncExternalRoles_ManagerOnly(t *testing.T) {
	svc, _, _, _, _ := newTestRoleService()

	_, err := svc.SyncExternalRoles(context.Background(), ports.Actor{ID: "u1", Role: domain.RoleTeamLeader})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestRoleService_DashboardTasks(t *testing.T) {
	svc, _, tasks, _, _ := newTestRoleService()

	emp := "emp-1"
	tasks.tasks["t1"] = &domain.Task{ID: "t1", Status: domain.StatusAssigned, AssignedToID: &emp, CreatorID: "leader-1"}
	tasks.tasks["t2"] = &domain.Task{ID: "t2", Status: domain.StatusPending, CreatorID: "leader-1"}
	tasks.tasks["t3"] = &domain.Task{ID: "t3", Status: domain.StatusPending, CreatorID: "leader-2"}

	got, err := svc.DashboardTasks(context.Background(), ports.Actor{ID: "emp-1", Role: domain.RoleEmployee}, "employee")
	if err != nil {
		t.Fatalf("employee dashboard: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("employee sees %+v, want only t1", got)
	}

	got, err = svc.DashboardTasks(context.Background(), ports.Actor{ID: "leader-1", Role: domain.RoleTeamLeader}, "team_leader")
	if err != nil {
		t.Fatalf("leader dashboard: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("leader sees %d tasks, want 2", len(got))
	}

	got, err = svc.DashboardTasks(context.Background(), ports.Actor{ID: "mgr-1", Role: domain.RoleManager}, "manager")
	if err != nil {
		t.Fatalf("manager dashboard: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("manager sees %d tasks, want 3", len(got))
	}
}

func TestRoleService_DashboardTasks_WrongNamespace(t *testing.T) {
	svc, _, _, _, _ := newTestRoleService()

	_, err := svc.DashboardTasks(context.Background(), ports.Actor{ID: "emp-1", Role: domain.RoleEmployee}, "manager")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

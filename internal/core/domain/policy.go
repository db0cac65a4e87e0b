package domain

import "fmt"

// Action enumerates every role- or ownership-gated operation in the core.
// All access decisions go through Authorize so the rules live in one table
// instead of per-route conditionals.
type Action string

const (
	ActionAssignTask       Action = "assign_task"
	ActionAcceptTask       Action = "accept_task"
	ActionUpdateProgress   Action = "update_progress"
	ActionSetStatus        Action = "set_status"
	ActionChangeRole       Action = "change_role"
	ActionCleanupTasks     Action = "cleanup_tasks"
	ActionSyncRoles        Action = "sync_roles"
	ActionReadOwnDashboard Action = "read_own_dashboard"
)

// Ownership carries the resource-side facts a decision may depend on. Only
// the fields relevant to the action need to be populated.
type Ownership struct {
	ActorID      string
	AssigneeID   string // task.assignedTo, empty when unassigned
	TeamLeaderID string // leader of task.team, empty when the task has no team
	Namespace    string // requested dashboard namespace
}

// Authorize is the single access-control decision function. It returns nil
// on allow and ErrForbidden (wrapped with a reason) on deny. It never
// reports not-found: resource resolution happens before authorization so
// 403 and 404 stay distinct.
func Authorize(actorRole Role, action Action, own Ownership) error {
	switch action {
	case ActionAssignTask:
		if actorRole == RoleTeamLeader {
			return nil
		}
		return deny("only team leaders can assign tasks")
	case ActionAcceptTask:
		if own.AssigneeID != "" && own.ActorID == own.AssigneeID {
			return nil
		}
		return deny("only the assignee can accept this task")
	case ActionUpdateProgress:
		if own.TeamLeaderID != "" && own.ActorID == own.TeamLeaderID {
			return nil
		}
		return deny("only the team leader can update progress")
	case ActionSetStatus:
		if own.AssigneeID != "" && own.ActorID == own.AssigneeID {
			return nil
		}
		return deny("only the assignee can update status")
	case ActionChangeRole:
		if actorRole == RoleManager {
			return nil
		}
		return deny("only managers can change roles")
	case ActionCleanupTasks:
		if actorRole == RoleManager {
			return nil
		}
		return deny("only managers can run task cleanup")
	case ActionSyncRoles:
		if actorRole == RoleManager {
			return nil
		}
		return deny("only managers can sync roles")
	case ActionReadOwnDashboard:
		if string(actorRole) == own.Namespace {
			return nil
		}
		return deny("dashboard does not match actor role")
	}
	return deny("unknown action")
}

func deny(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}

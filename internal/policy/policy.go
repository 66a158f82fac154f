// Package policy implements the authorization engine for task operations.
// It is a pure decision function over (actor, action, task): no I/O, no
// side effects. Admins are allowed everything; members are gated by a single
// ownership predicate (task assigned to the actor). Any combination not
// explicitly allowed is denied.
package policy

import "github.com/taskflow-app/taskflow/internal/domain"

// Action identifies an operation requested on a task.
type Action string

const (
	ActionList   Action = "list"
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Reason is a stable code attached to a Deny decision.
type Reason string

const (
	// ReasonNotOwner: the task is assigned to someone else.
	ReasonNotOwner Reason = "not-owner"
	// ReasonCannotAssignOthers: a member tried to create a task assigned to
	// another user.
	ReasonCannotAssignOthers Reason = "cannot-assign-others"
	// ReasonReassignForbidden: a member tried to change a task's assignee.
	ReasonReassignForbidden Reason = "reassign-forbidden"
	// ReasonNotPermitted: default deny for anything not explicitly allowed.
	ReasonNotPermitted Reason = "not-permitted"
)

// Message returns the human-readable explanation for a deny reason.
func (r Reason) Message() string {
	switch r {
	case ReasonNotOwner:
		return "you can only act on tasks assigned to you"
	case ReasonCannotAssignOthers:
		return "you can only assign tasks to yourself"
	case ReasonReassignForbidden:
		return "only admins can reassign tasks"
	default:
		return "action not permitted"
	}
}

// Request describes a requested action together with the task state the
// decision depends on.
type Request struct {
	Action Action

	// Task is the existing task for view, update, and delete requests.
	Task *domain.Task

	// DraftAssignee is the proposed assignee for create requests.
	// Empty means the draft omits it (defaults to the actor).
	DraftAssignee string

	// PatchAssignee is the proposed assignee for update requests.
	// Nil means the patch leaves the assignee unchanged.
	PatchAssignee *string
}

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow returns a permitting decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a rejecting decision with the given reason code.
func Deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Engine evaluates authorization requests. It is stateless; a single
// instance is shared by the task lifecycle manager.
type Engine struct{}

// NewEngine creates a new Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Decide returns the authorization decision for the actor's request.
// It is total over the (role, action, ownership) space: every path ends in
// an explicit Allow or Deny, with Deny as the default.
func (e *Engine) Decide(actor domain.Actor, req Request) Decision {
	if actor.IsAdmin() {
		return Allow()
	}

	switch req.Action {
	case ActionList:
		// Allowed for everyone; the lifecycle manager restricts the result
		// set to tasks assigned to the actor.
		return Allow()

	case ActionCreate:
		if req.DraftAssignee != "" && req.DraftAssignee != actor.ID {
			return Deny(ReasonCannotAssignOthers)
		}
		return Allow()

	case ActionView, ActionDelete:
		if req.Task == nil || !req.Task.IsOwnedBy(actor.ID) {
			return Deny(ReasonNotOwner)
		}
		return Allow()

	case ActionUpdate:
		if req.Task == nil || !req.Task.IsOwnedBy(actor.ID) {
			return Deny(ReasonNotOwner)
		}
		if req.PatchAssignee != nil && *req.PatchAssignee != req.Task.AssigneeID {
			return Deny(ReasonReassignForbidden)
		}
		return Allow()

	default:
		return Deny(ReasonNotPermitted)
	}
}

package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskflow-app/taskflow/internal/domain"
	"github.com/taskflow-app/taskflow/internal/policy"
)

func strPtr(s string) *string { return &s }

func ownedTask(assigneeID string) *domain.Task {
	return &domain.Task{
		ID:         "11111111-1111-1111-1111-111111111111",
		Title:      "Write API documentation",
		Status:     domain.TaskStatusTodo,
		Priority:   domain.TaskPriorityMedium,
		AssigneeID: assigneeID,
		CreatorID:  "creator-1",
	}
}

func TestDecide_AdminAlwaysAllowed(t *testing.T) {
	engine := policy.NewEngine()
	admin := domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
	otherTask := ownedTask("someone-else")

	requests := []policy.Request{
		{Action: policy.ActionList},
		{Action: policy.ActionView, Task: otherTask},
		{Action: policy.ActionCreate, DraftAssignee: "someone-else"},
		{Action: policy.ActionUpdate, Task: otherTask, PatchAssignee: strPtr("third-user")},
		{Action: policy.ActionDelete, Task: otherTask},
	}

	for _, req := range requests {
		decision := engine.Decide(admin, req)
		assert.True(t, decision.Allowed, "admin must never be denied action %s", req.Action)
	}
}

func TestDecide_MemberRules(t *testing.T) {
	engine := policy.NewEngine()
	member := domain.Actor{ID: "member-1", Role: domain.RoleMember}

	tests := []struct {
		name       string
		req        policy.Request
		wantAllow  bool
		wantReason policy.Reason
	}{
		{
			name:      "list allowed",
			req:       policy.Request{Action: policy.ActionList},
			wantAllow: true,
		},
		{
			name:      "view own task",
			req:       policy.Request{Action: policy.ActionView, Task: ownedTask("member-1")},
			wantAllow: true,
		},
		{
			name:       "view someone else's task",
			req:        policy.Request{Action: policy.ActionView, Task: ownedTask("member-2")},
			wantAllow:  false,
			wantReason: policy.ReasonNotOwner,
		},
		{
			name:      "create without assignee",
			req:       policy.Request{Action: policy.ActionCreate},
			wantAllow: true,
		},
		{
			name:      "create self-assigned",
			req:       policy.Request{Action: policy.ActionCreate, DraftAssignee: "member-1"},
			wantAllow: true,
		},
		{
			name:       "create assigned to another user",
			req:        policy.Request{Action: policy.ActionCreate, DraftAssignee: "member-2"},
			wantAllow:  false,
			wantReason: policy.ReasonCannotAssignOthers,
		},
		{
			name:      "update own task without reassignment",
			req:       policy.Request{Action: policy.ActionUpdate, Task: ownedTask("member-1")},
			wantAllow: true,
		},
		{
			name:      "update own task with assignee set to current value",
			req:       policy.Request{Action: policy.ActionUpdate, Task: ownedTask("member-1"), PatchAssignee: strPtr("member-1")},
			wantAllow: true,
		},
		{
			name:       "update own task with reassignment",
			req:        policy.Request{Action: policy.ActionUpdate, Task: ownedTask("member-1"), PatchAssignee: strPtr("member-2")},
			wantAllow:  false,
			wantReason: policy.ReasonReassignForbidden,
		},
		{
			name:       "update someone else's task",
			req:        policy.Request{Action: policy.ActionUpdate, Task: ownedTask("member-2")},
			wantAllow:  false,
			wantReason: policy.ReasonNotOwner,
		},
		{
			name:       "ownership checked before reassignment",
			req:        policy.Request{Action: policy.ActionUpdate, Task: ownedTask("member-2"), PatchAssignee: strPtr("member-1")},
			wantAllow:  false,
			wantReason: policy.ReasonNotOwner,
		},
		{
			name:      "delete own task",
			req:       policy.Request{Action: policy.ActionDelete, Task: ownedTask("member-1")},
			wantAllow: true,
		},
		{
			name:       "delete someone else's task",
			req:        policy.Request{Action: policy.ActionDelete, Task: ownedTask("member-2")},
			wantAllow:  false,
			wantReason: policy.ReasonNotOwner,
		},
		{
			name:       "unknown action denied by default",
			req:        policy.Request{Action: policy.Action("archive")},
			wantAllow:  false,
			wantReason: policy.ReasonNotPermitted,
		},
		{
			name:       "view without task denied",
			req:        policy.Request{Action: policy.ActionView},
			wantAllow:  false,
			wantReason: policy.ReasonNotOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := engine.Decide(member, tt.req)
			assert.Equal(t, tt.wantAllow, decision.Allowed)
			if !tt.wantAllow {
				assert.Equal(t, tt.wantReason, decision.Reason)
			}
		})
	}
}

func TestReasonMessages(t *testing.T) {
	assert.Equal(t, "you can only act on tasks assigned to you", policy.ReasonNotOwner.Message())
	assert.Equal(t, "you can only assign tasks to yourself", policy.ReasonCannotAssignOthers.Message())
	assert.Equal(t, "only admins can reassign tasks", policy.ReasonReassignForbidden.Message())
	assert.Equal(t, "action not permitted", policy.ReasonNotPermitted.Message())
}

package board_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskflow-app/taskflow/internal/board"
	"github.com/taskflow-app/taskflow/internal/domain"
	"github.com/taskflow-app/taskflow/internal/policy"
)

// fakeUpdater simulates the server side of a status update.
type fakeUpdater struct {
	calls    int
	response *domain.Task
	err      error
}

func (f *fakeUpdater) UpdateStatus(_ context.Context, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func boardWith(task domain.Task) *board.Board {
	b := board.New()
	b.Load([]*domain.Task{&task})
	return b
}

func baseTask() domain.Task {
	return domain.Task{
		ID:         "task-1",
		Title:      "Design user interface mockups",
		Status:     domain.TaskStatusTodo,
		Priority:   domain.TaskPriorityMedium,
		AssigneeID: "member-1",
		CreatorID:  "admin-1",
	}
}

func TestMoveTask_SuccessReplacesWithCanonicalRecord(t *testing.T) {
	b := boardWith(baseTask())

	// The server response differs from the optimistic guess: a concurrent
	// admin reassignment changed the assignee.
	canonical := baseTask()
	canonical.Status = domain.TaskStatusInProgress
	canonical.AssigneeID = "member-2"
	updater := &fakeUpdater{response: &canonical}

	err := b.MoveTask(context.Background(), updater, "task-1", domain.TaskStatusInProgress)
	require.NoError(t, err)

	got, ok := b.Get("task-1")
	require.True(t, ok)
	assert.Equal(t, domain.TaskStatusInProgress, got.Status)
	assert.Equal(t, "member-2", got.AssigneeID, "local record must be replaced with the canonical response")
	assert.Equal(t, 1, updater.calls)
}

func TestMoveTask_RejectionRevertsStatus(t *testing.T) {
	b := boardWith(baseTask())

	denyErr := domain.ErrPermissionDenied
	updater := &fakeUpdater{err: denyErr}

	err := b.MoveTask(context.Background(), updater, "task-1", domain.TaskStatusDone)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied, "rejection reason must be surfaced unchanged")

	got, ok := b.Get("task-1")
	require.True(t, ok)
	assert.Equal(t, domain.TaskStatusTodo, got.Status, "status must revert to the pre-optimistic value")
	assert.Equal(t, 1, updater.calls, "a rejected move is terminal, never retried")
}

func TestMoveTask_SameStatusIsNoop(t *testing.T) {
	b := boardWith(baseTask())
	updater := &fakeUpdater{}

	err := b.MoveTask(context.Background(), updater, "task-1", domain.TaskStatusTodo)
	require.NoError(t, err)
	assert.Equal(t, 0, updater.calls, "no request is sent when the status is unchanged")
}

func TestMoveTask_UnknownTask(t *testing.T) {
	b := board.New()
	updater := &fakeUpdater{}

	err := b.MoveTask(context.Background(), updater, "missing", domain.TaskStatusDone)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Equal(t, 0, updater.calls)
}

func TestMoveTask_FullCycleThroughEveryStatus(t *testing.T) {
	b := boardWith(baseTask())

	// The server accepts every transition: the status machine has no
	// restricted edges.
	steps := []domain.TaskStatus{
		domain.TaskStatusDone,
		domain.TaskStatusTodo,
		domain.TaskStatusInProgress,
		domain.TaskStatusDone,
	}

	for _, status := range steps {
		canonical := baseTask()
		canonical.Status = status
		updater := &fakeUpdater{response: &canonical}

		err := b.MoveTask(context.Background(), updater, "task-1", status)
		require.NoError(t, err)

		got, _ := b.Get("task-1")
		assert.Equal(t, status, got.Status)
	}
}

func TestMoveTask_RejectionMessageCarriesReasonCode(t *testing.T) {
	b := boardWith(baseTask())

	updater := &fakeUpdater{
		err: errWithReason{},
	}

	err := b.MoveTask(context.Background(), updater, "task-1", domain.TaskStatusDone)
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(policy.ReasonNotOwner))
}

type errWithReason struct{}

func (errWithReason) Error() string {
	return "permission denied: " + string(policy.ReasonNotOwner) + ": " + policy.ReasonNotOwner.Message()
}

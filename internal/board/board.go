// Package board implements the client-side task board used by interactive
// callers. Status moves are applied optimistically: the local record changes
// immediately, the update request is sent, and on rejection the status
// reverts to its pre-optimistic value. A rejected move is terminal for that
// attempt; nothing is retried and an in-flight request cannot be aborted.
package board

import (
	"context"
	"sync"

	"github.com/taskflow-app/taskflow/internal/domain"
	"github.com/taskflow-app/taskflow/internal/service"
)

// StatusUpdater sends a status change to the server and returns the
// canonical post-mutation task record.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, taskID string, status domain.TaskStatus) (*domain.Task, error)
}

// Board holds the local mirror of the task list.
type Board struct {
	mu    sync.Mutex
	tasks map[string]*domain.Task
}

// New creates an empty Board.
func New() *Board {
	return &Board{tasks: make(map[string]*domain.Task)}
}

// Load replaces the board contents with the given tasks.
func (b *Board) Load(tasks []*domain.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tasks = make(map[string]*domain.Task, len(tasks))
	for _, task := range tasks {
		copied := *task
		b.tasks[task.ID] = &copied
	}
}

// Get returns a copy of the local task record.
func (b *Board) Get(taskID string) (domain.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	task, ok := b.tasks[taskID]
	if !ok {
		return domain.Task{}, false
	}
	return *task, true
}

// Len returns the number of tasks on the board.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.tasks)
}

// MoveTask moves a task to a new status using the optimistic protocol:
// apply locally, send the update, replace with the canonical record on
// success, revert to the pre-optimistic status on rejection. The returned
// error is the server's rejection, surfaced unchanged.
func (b *Board) MoveTask(ctx context.Context, updater StatusUpdater, taskID string, newStatus domain.TaskStatus) error {
	b.mu.Lock()
	task, ok := b.tasks[taskID]
	if !ok {
		b.mu.Unlock()
		return domain.ErrTaskNotFound
	}
	if task.Status == newStatus {
		b.mu.Unlock()
		return nil
	}

	prevStatus := task.Status
	task.Status = newStatus
	b.mu.Unlock()

	canonical, err := updater.UpdateStatus(ctx, taskID, newStatus)

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		// The task may have been replaced while the request was in flight;
		// revert only if the record is still present.
		if current, ok := b.tasks[taskID]; ok {
			current.Status = prevStatus
		}
		return err
	}

	// The canonical record may differ from the optimistic guess, e.g. after
	// a concurrent admin reassignment.
	copied := *canonical
	b.tasks[taskID] = &copied
	return nil
}

// ServiceUpdater adapts the task lifecycle manager to the StatusUpdater
// interface for callers embedded in the same process.
type ServiceUpdater struct {
	svc   *service.TaskService
	actor domain.Actor
}

// NewServiceUpdater creates a StatusUpdater backed by the given service,
// acting as the given actor.
func NewServiceUpdater(svc *service.TaskService, actor domain.Actor) *ServiceUpdater {
	return &ServiceUpdater{svc: svc, actor: actor}
}

// UpdateStatus sends the status change through the lifecycle manager.
func (u *ServiceUpdater) UpdateStatus(ctx context.Context, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	return u.svc.Update(ctx, u.actor, taskID, service.TaskPatch{Status: &status})
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskflow-app/taskflow/internal/domain"
	"github.com/taskflow-app/taskflow/internal/policy"
	"github.com/taskflow-app/taskflow/internal/repository"
)

// TaskService is the task lifecycle manager. Every operation first obtains
// an authorization decision from the policy engine and performs no mutation
// on a deny. Mutations run inside a transaction with the task row locked, so
// each operation is atomic: a rejected patch persists nothing.
type TaskService struct {
	pool     *pgxpool.Pool
	taskRepo *repository.TaskRepository
	userRepo *repository.UserRepository
	policy   *policy.Engine
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	pool *pgxpool.Pool,
	taskRepo *repository.TaskRepository,
	userRepo *repository.UserRepository,
) *TaskService {
	return &TaskService{
		pool:     pool,
		taskRepo: taskRepo,
		userRepo: userRepo,
		policy:   policy.NewEngine(),
	}
}

// CreateTaskParams holds the draft for a new task.
type CreateTaskParams struct {
	Title       string
	Description string
	Status      domain.TaskStatus // optional, defaults to todo
	Priority    domain.TaskPriority
	AssigneeID  string // optional, defaults to the actor
	DueDate     *time.Time
}

// TaskPatch is a partial set of field updates. Fields are independently
// optional; a nil pointer leaves the current value unchanged. ClearDueDate
// distinguishes an explicit null due date from an absent field.
type TaskPatch struct {
	Title        *string
	Description  *string
	Status       *domain.TaskStatus
	Priority     *domain.TaskPriority
	AssigneeID   *string
	DueDate      *time.Time
	ClearDueDate bool
}

// denyError converts a deny decision into a permission error carrying the
// stable reason code and its human-readable message.
func denyError(d policy.Decision) error {
	return fmt.Errorf("%w: %s: %s", domain.ErrPermissionDenied, d.Reason, d.Reason.Message())
}

// rollback releases the transaction, ignoring the already-closed case after
// a successful commit.
func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Error("failed to rollback transaction", "error", err)
	}
}

// resolveAssignee validates that the assignee references an existing user.
// The reference is checked at assignment time only, never retroactively.
func (s *TaskService) resolveAssignee(ctx context.Context, assigneeID string) error {
	_, err := s.userRepo.GetByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrAssigneeNotFound, assigneeID)
		}
		return fmt.Errorf("resolve assignee: %w", err)
	}
	return nil
}

// Create validates the draft and persists a new task. The creator is always
// the actor; an omitted assignee defaults to the actor.
func (s *TaskService) Create(ctx context.Context, actor domain.Actor, params CreateTaskParams) (*domain.Task, error) {
	decision := s.policy.Decide(actor, policy.Request{
		Action:        policy.ActionCreate,
		DraftAssignee: params.AssigneeID,
	})
	if !decision.Allowed {
		return nil, denyError(decision)
	}

	if strings.TrimSpace(params.Title) == "" {
		return nil, domain.ErrEmptyTitle
	}
	if !params.Priority.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPriority, params.Priority)
	}
	status := params.Status
	if status == "" {
		status = domain.TaskStatusTodo
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	assigneeID := params.AssigneeID
	if assigneeID == "" {
		assigneeID = actor.ID
	}
	if err := s.resolveAssignee(ctx, assigneeID); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	task := &domain.Task{
		Title:       params.Title,
		Description: params.Description,
		Status:      status,
		Priority:    params.Priority,
		AssigneeID:  assigneeID,
		CreatorID:   actor.ID,
		DueDate:     params.DueDate,
	}

	task, err = s.taskRepo.Create(ctx, tx, task)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("task created",
		"task_id", task.ID,
		"actor_id", actor.ID,
		"assignee_id", task.AssigneeID,
	)

	return task, nil
}

// Get retrieves a single task the actor is allowed to view.
func (s *TaskService) Get(ctx context.Context, actor domain.Actor, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	decision := s.policy.Decide(actor, policy.Request{
		Action: policy.ActionView,
		Task:   task,
	})
	if !decision.Allowed {
		return nil, denyError(decision)
	}

	return task, nil
}

// List returns the tasks visible to the actor, most recently created first.
// Admins see all tasks; members see only tasks assigned to them. The member
// restriction is a consequence of the ownership rule, not a separate filter.
func (s *TaskService) List(ctx context.Context, actor domain.Actor) ([]*domain.Task, error) {
	decision := s.policy.Decide(actor, policy.Request{Action: policy.ActionList})
	if !decision.Allowed {
		return nil, denyError(decision)
	}

	return s.taskRepo.List(ctx, s.scopeFor(actor))
}

// Update applies a patch to a task. Reassignment permission is checked
// before any other field; a denied or invalid patch leaves the task
// untouched.
func (s *TaskService) Update(ctx context.Context, actor domain.Actor, taskID string, patch TaskPatch) (*domain.Task, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	decision := s.policy.Decide(actor, policy.Request{
		Action:        policy.ActionUpdate,
		Task:          task,
		PatchAssignee: patch.AssigneeID,
	})
	if !decision.Allowed {
		return nil, denyError(decision)
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, domain.ErrEmptyTitle
		}
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		// Status is a label, not a workflow gate: no transition graph.
		if !patch.Status.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, *patch.Status)
		}
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !patch.Priority.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPriority, *patch.Priority)
		}
		task.Priority = *patch.Priority
	}
	if patch.AssigneeID != nil && *patch.AssigneeID != task.AssigneeID {
		if err := s.resolveAssignee(ctx, *patch.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = *patch.AssigneeID
	}
	if patch.ClearDueDate {
		task.DueDate = nil
	} else if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}

	task, err = s.taskRepo.Update(ctx, tx, task)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("task updated",
		"task_id", task.ID,
		"actor_id", actor.ID,
		"status", task.Status,
		"assignee_id", task.AssigneeID,
	)

	return task, nil
}

// Delete removes a task the actor is allowed to delete. Deletion is
// terminal and immediate.
func (s *TaskService) Delete(ctx context.Context, actor domain.Actor, taskID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, taskID)
	if err != nil {
		return err
	}

	decision := s.policy.Decide(actor, policy.Request{
		Action: policy.ActionDelete,
		Task:   task,
	})
	if !decision.Allowed {
		return denyError(decision)
	}

	if err := s.taskRepo.Delete(ctx, tx, taskID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("task deleted",
		"task_id", taskID,
		"actor_id", actor.ID,
	)

	return nil
}

// Stats returns aggregate counts over the tasks visible to the actor,
// scoped the same way as List.
func (s *TaskService) Stats(ctx context.Context, actor domain.Actor) (*repository.TaskStatsResult, error) {
	decision := s.policy.Decide(actor, policy.Request{Action: policy.ActionList})
	if !decision.Allowed {
		return nil, denyError(decision)
	}

	return s.taskRepo.GetStats(ctx, s.scopeFor(actor))
}

// scopeFor maps the actor to its visibility scope.
func (s *TaskService) scopeFor(actor domain.Actor) repository.TaskScope {
	if actor.IsAdmin() {
		return repository.TaskScope{}
	}
	assigneeID := actor.ID
	return repository.TaskScope{AssigneeID: &assigneeID}
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/taskflow-app/taskflow/internal/domain"
	"github.com/taskflow-app/taskflow/internal/handler/dto"
	"github.com/taskflow-app/taskflow/internal/middleware"
	"github.com/taskflow-app/taskflow/internal/service"
)

// handleListTasks returns the tasks visible to the caller.
// @Summary List tasks
// @Description Admins see all tasks; members see only tasks assigned to them. Ordered most recently created first.
// @Tags tasks
// @Produce json
// @Success 200 {array} dto.TaskResponse
// @Security BearerAuth
// @Router /tasks [get]
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	tasks, err := h.taskService.List(ctx, user.Actor())
	if err != nil {
		status, message := dto.MapDomainError(err)
		respondError(w, status, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponses(tasks))
}

// handleCreateTask creates a new task.
// @Summary Create a task
// @Description Creates a task. Members may only assign to themselves; an omitted assignee defaults to the caller.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task draft"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(ctx, user.Actor(), service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		AssigneeID:  req.Assignee,
		DueDate:     req.DueDate,
	})
	if err != nil {
		status, message := dto.MapDomainError(err)
		respondError(w, status, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskResponse(task))
}

// handleGetTask retrieves a single task.
// @Summary Get a task
// @Description Get a task by ID. Members can only view tasks assigned to them.
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Get(ctx, user.Actor(), taskID)
	if err != nil {
		status, message := dto.MapDomainError(err)
		respondError(w, status, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleUpdateTask applies a partial update to a task.
// @Summary Update a task
// @Description Updates task fields. A patch that includes a forbidden reassignment is rejected as a whole; no field is applied.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Task patch"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.Assignee,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		patch.Priority = &priority
	}
	if req.DueDate.Set {
		if req.DueDate.Value == nil {
			patch.ClearDueDate = true
		} else {
			patch.DueDate = req.DueDate.Value
		}
	}

	task, err := h.taskService.Update(ctx, user.Actor(), taskID, patch)
	if err != nil {
		status, message := dto.MapDomainError(err)
		respondError(w, status, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleDeleteTask deletes a task.
// @Summary Delete a task
// @Description Deletes a task. Members can only delete tasks assigned to them. Deletion is immediate and terminal.
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(ctx, user.Actor(), taskID); err != nil {
		status, message := dto.MapDomainError(err)
		respondError(w, status, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.MessageResponse{Message: "Task deleted successfully"})
}

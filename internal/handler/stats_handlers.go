package handler

import (
	"net/http"

	"github.com/taskflow-app/taskflow/internal/handler/dto"
	"github.com/taskflow-app/taskflow/internal/middleware"
)

// handleGetStats returns aggregate counts over the caller's visible tasks.
// @Summary Get task statistics
// @Description Counts by status, overdue count and completion rate, scoped like the task list.
// @Tags stats
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Security BearerAuth
// @Router /stats [get]
func (h *Handler) handleGetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	stats, err := h.taskService.Stats(ctx, user.Actor())
	if err != nil {
		status, message := dto.MapDomainError(err)
		respondError(w, status, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToStatsResponse(stats))
}

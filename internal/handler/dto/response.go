package dto

import (
	"time"

	"github.com/taskflow-app/taskflow/internal/domain"
	"github.com/taskflow-app/taskflow/internal/repository"
)

// TaskResponse is the canonical task record returned to clients.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Assignee    string     `json:"assignee"`
	Creator     string     `json:"creator"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ToTaskResponse converts a domain.Task to its wire representation.
func ToTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		Assignee:    task.AssigneeID,
		Creator:     task.CreatorID,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskResponses converts a task list, preserving order.
func ToTaskResponses(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		out[i] = ToTaskResponse(task)
	}
	return out
}

// MessageResponse carries a human-readable confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatsResponse holds aggregate counts for the caller's visible tasks.
type StatsResponse struct {
	Total          int     `json:"total"`
	Todo           int     `json:"todo"`
	InProgress     int     `json:"inprogress"`
	Done           int     `json:"done"`
	Overdue        int     `json:"overdue"`
	CompletionRate float64 `json:"completionRate"`
}

// ToStatsResponse converts repository stats to the wire representation.
func ToStatsResponse(stats *repository.TaskStatsResult) StatsResponse {
	resp := StatsResponse{
		Total:      stats.Total,
		Todo:       stats.Todo,
		InProgress: stats.InProgress,
		Done:       stats.Done,
		Overdue:    stats.Overdue,
	}
	if stats.Total > 0 {
		resp.CompletionRate = float64(stats.Done) / float64(stats.Total) * 100
	}
	return resp
}

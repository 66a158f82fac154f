package repository

import (
	"context"
	"fmt"
)

// TaskStatsResult holds aggregate task counts for a board view.
type TaskStatsResult struct {
	Total      int
	Todo       int
	InProgress int
	Done       int
	Overdue    int
}

// GetStats computes task counts within the scope. Overdue counts tasks with
// a past due date that are not done.
func (r *TaskRepository) GetStats(ctx context.Context, scope TaskScope) (*TaskStatsResult, error) {
	query := `
		SELECT
			COUNT(*) as total,
			COUNT(CASE WHEN status = 'todo' THEN 1 END) as todo,
			COUNT(CASE WHEN status = 'inprogress' THEN 1 END) as inprogress,
			COUNT(CASE WHEN status = 'done' THEN 1 END) as done,
			COUNT(CASE WHEN due_date < NOW() AND status <> 'done' THEN 1 END) as overdue
		FROM tasks
	`

	var args []interface{}
	if scope.AssigneeID != nil {
		query += " WHERE assignee_id = $1"
		args = append(args, *scope.AssigneeID)
	}

	var result TaskStatsResult
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&result.Total,
		&result.Todo,
		&result.InProgress,
		&result.Done,
		&result.Overdue,
	)
	if err != nil {
		return nil, fmt.Errorf("query task stats: %w", err)
	}

	return &result, nil
}

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskflow-app/taskflow/internal/database"
	"github.com/taskflow-app/taskflow/internal/domain"
	"github.com/taskflow-app/taskflow/internal/repository"
	"github.com/taskflow-app/taskflow/internal/service"
	"github.com/urfave/cli/v2"
)

// runSeedDemo creates the demo accounts and a handful of tasks so a fresh
// install has something to show. Running it twice is a no-op.
func runSeedDemo(c *cli.Context) error {
	ctx := c.Context
	databaseURL := c.String("database-url")

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	userRepo := repository.NewUserRepository(db.Pool())
	taskRepo := repository.NewTaskRepository(db.Pool())
	taskService := service.NewTaskService(db.Pool(), taskRepo, userRepo)

	if _, err := userRepo.GetByEmail(ctx, "admin@demo.com"); err == nil {
		slog.Info("demo data already exists, skipping")
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("check demo data: %w", err)
	}

	admin, err := userRepo.Create(ctx, &domain.User{
		Name:  "Admin User",
		Email: "admin@demo.com",
		Role:  domain.RoleAdmin,
		Token: "demo-admin-token",
	})
	if err != nil {
		return fmt.Errorf("create demo admin: %w", err)
	}

	member, err := userRepo.Create(ctx, &domain.User{
		Name:  "John Doe",
		Email: "user@demo.com",
		Role:  domain.RoleMember,
		Token: "demo-member-token",
	})
	if err != nil {
		return fmt.Errorf("create demo member: %w", err)
	}

	now := time.Now()
	datePtr := func(t time.Time) *time.Time { return &t }

	demoTasks := []service.CreateTaskParams{
		{
			Title:       "Setup project repository",
			Description: "Initialize the project repository with proper structure and documentation",
			Status:      domain.TaskStatusDone,
			Priority:    domain.TaskPriorityHigh,
			AssigneeID:  admin.ID,
			DueDate:     datePtr(now.AddDate(0, 0, -1)),
		},
		{
			Title:       "Design user interface mockups",
			Description: "Create wireframes and mockups for the main dashboard and task management interface",
			Status:      domain.TaskStatusInProgress,
			Priority:    domain.TaskPriorityMedium,
			AssigneeID:  member.ID,
			DueDate:     datePtr(now.AddDate(0, 0, 2)),
		},
		{
			Title:       "Implement authentication system",
			Description: "Build token-based authentication with login, register, and protected routes",
			Status:      domain.TaskStatusTodo,
			Priority:    domain.TaskPriorityHigh,
			AssigneeID:  admin.ID,
			DueDate:     datePtr(now.AddDate(0, 0, 3)),
		},
		{
			Title:       "Write API documentation",
			Description: "Document all API endpoints with examples and response formats",
			Status:      domain.TaskStatusTodo,
			Priority:    domain.TaskPriorityLow,
			AssigneeID:  member.ID,
			DueDate:     datePtr(now.AddDate(0, 0, 7)),
		},
		{
			Title:       "Setup CI/CD pipeline",
			Description: "Configure automated testing and deployment pipeline",
			Status:      domain.TaskStatusTodo,
			Priority:    domain.TaskPriorityMedium,
			AssigneeID:  admin.ID,
			DueDate:     datePtr(now.AddDate(0, 0, 5)),
		},
	}

	for _, params := range demoTasks {
		if _, err := taskService.Create(ctx, admin.Actor(), params); err != nil {
			return fmt.Errorf("create demo task %q: %w", params.Title, err)
		}
	}

	slog.Info("demo data created",
		"admin_token", admin.Token,
		"member_token", member.Token,
		"tasks", len(demoTasks),
	)

	return nil
}

package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Task errors
	ErrTaskNotFound = errors.New("task not found")

	// Permission errors
	ErrPermissionDenied = errors.New("permission denied")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidToken = errors.New("invalid authentication token")

	// Validation errors
	ErrEmptyTitle       = errors.New("title is required")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrInvalidPriority  = errors.New("invalid task priority")
	ErrInvalidRole      = errors.New("invalid user role")
	ErrAssigneeNotFound = errors.New("assigned user not found")
)

package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taskflow-app/taskflow/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Message: message}
}

// MapDomainError maps domain errors to HTTP status codes and messages.
// Authorization denials keep their reason code in the message; validation
// failures report the first failing field.
func MapDomainError(err error) (status int, message string) {
	message = err.Error()

	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, message
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, message

	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, message

	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, message

	case errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrAssigneeNotFound):
		return http.StatusBadRequest, message

	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "Internal server error"
	}
}

package dto

import (
	"encoding/json"
	"time"
)

// OptionalTime distinguishes an absent JSON field from an explicit null.
// An explicit null clears the stored value.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the
// field is present, so Set records presence.
func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	o.Value = &t
	return nil
}

// CreateTaskRequest represents the request body for POST /tasks.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Priority    string     `json:"priority"`
	Assignee    string     `json:"assignee,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// UpdateTaskRequest represents the request body for PUT /tasks/:id.
// All fields are independently optional.
type UpdateTaskRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Status      *string      `json:"status"`
	Priority    *string      `json:"priority"`
	Assignee    *string      `json:"assignee"`
	DueDate     OptionalTime `json:"dueDate"`
}

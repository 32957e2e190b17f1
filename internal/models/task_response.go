package models

import "taskly-be/internal/entities"

// TaskOwner is the slice of the user shown next to a task list
type TaskOwner struct {
	FullName string `json:"full_name"`
}

// TaskListResponse represents the response for listing the caller's tasks
type TaskListResponse struct {
	Success bool             `json:"success"`
	User    TaskOwner        `json:"user"`
	Data    []*entities.Task `json:"data"`
}

// TaskResponse represents the response for a single task
type TaskResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    *entities.Task `json:"data"`
}

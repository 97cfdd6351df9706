package api

import (
	"github.com/taskloop/taskloop-api/internal/domain"
	"github.com/taskloop/taskloop-api/internal/store"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username  string `json:"username"  validate:"required,min=3,max=30"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6,max=72"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}

// ProfileResponse wraps the current user's profile.
type ProfileResponse struct {
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user"`
}

// UpdateProfileRequest defines the payload for profile updates. All
// fields are optional; absent fields leave the stored values untouched.
type UpdateProfileRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Username  string  `json:"username" validate:"omitempty,min=3,max=30"`
	Avatar    *string `json:"avatar"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6,max=72"`
}

// CreateTaskRequest defines the payload for task creation. Status is
// not accepted here; new tasks always start pending.
type CreateTaskRequest struct {
	Title       string           `json:"title"       validate:"required"`
	Description string           `json:"description"`
	Priority    string           `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     string           `json:"dueDate"`
	Tags        []string         `json:"tags"`
	Subtasks    []domain.Subtask `json:"subtasks"`
}

// UpdateTaskRequest defines the payload for partial task updates.
// Pointer fields distinguish "absent" (leave untouched) from "present"
// (apply, even when empty). An empty DueDate string clears the date.
type UpdateTaskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Status      *string          `json:"status"`
	Priority    *string          `json:"priority"`
	DueDate     *string          `json:"dueDate"`
	Tags        []string         `json:"tags"`
	Subtasks    []domain.Subtask `json:"subtasks"`
}

// Pagination is the paging metadata returned with task listings.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// TaskListResponse defines the response for the task listing endpoint.
type TaskListResponse struct {
	Tasks      []*domain.Task `json:"tasks"`
	Pagination Pagination     `json:"pagination"`
}

// TaskStatsResponse defines the response for the task statistics
// endpoint. The per-status and per-priority maps are keyed by the raw
// stored values, so stale historical values appear as extra buckets.
type TaskStatsResponse struct {
	TotalTasks    int            `json:"totalTasks"`
	OverdueTasks  int            `json:"overdueTasks"`
	StatusStats   map[string]int `json:"statusStats"`
	PriorityStats map[string]int `json:"priorityStats"`
}

// MessageResponse is a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// newTaskListResponse converts a store page into the wire shape.
func newTaskListResponse(page *store.TaskPage) TaskListResponse {
	tasks := page.Tasks
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return TaskListResponse{
		Tasks: tasks,
		Pagination: Pagination{
			Page:  page.Page,
			Limit: page.Limit,
			Total: page.Total,
			Pages: page.Pages,
		},
	}
}

// newTaskStatsResponse converts store aggregates into the wire shape.
func newTaskStatsResponse(stats *store.TaskStats) TaskStatsResponse {
	return TaskStatsResponse{
		TotalTasks:    stats.Total,
		OverdueTasks:  stats.Overdue,
		StatusStats:   stats.ByStatus,
		PriorityStats: stats.ByPriority,
	}
}

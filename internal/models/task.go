// Package models defines the task record and the request shapes bound by
// the HTTP layer.
package models

import "time"

// Task status values
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Priority values
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is the persisted record. id, created_at and updated_at are generated
// by the database; updated_at is refreshed by a trigger on every update.
type Task struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	Status      string    `db:"status" json:"status"`
	Priority    string    `db:"priority" json:"priority"`
	Category    string    `db:"category" json:"category"`
	DueDate     string    `db:"due_date" json:"due_date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CreateTaskRequest is the body for POST and PUT. Every field except
// description is required; PUT overwrites all mutable columns with exactly
// these values.
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description"`
	Status      string  `json:"status" binding:"required,oneof=pending in_progress completed"`
	Priority    string  `json:"priority" binding:"required,oneof=low medium high"`
	Category    string  `json:"category" binding:"required"`
	DueDate     string  `json:"due_date" binding:"required,dateformat"`
}

// UpdateTaskRequest is the body for PATCH. Only non-nil fields are written;
// an all-nil body is a valid no-op update.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,max=200"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" binding:"omitempty,oneof=pending in_progress completed"`
	Priority    *string `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
	Category    *string `json:"category,omitempty"`
	DueDate     *string `json:"due_date,omitempty" binding:"omitempty,dateformat"`
}

// ListTasksQuery holds the GET /api/tasks query parameters. Empty strings
// mean "no filter"; category is free text and accepts anything.
type ListTasksQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Priority string `form:"priority" binding:"omitempty,oneof=low medium high"`
	Category string `form:"category"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=due_date created_at updated_at"`
	Order    string `form:"order,default=asc" binding:"omitempty,oneof=asc desc"`
}

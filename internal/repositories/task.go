// Package repositories provides database access for task records.
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"

	"go-task-tracker/internal/models"
)

// ErrTaskNotFound is returned when no task exists for the requested id.
var ErrTaskNotFound = errors.New("task not found")

// ErrInvalidSort is returned when sort_by or order fall outside the
// allow-lists below.
var ErrInvalidSort = errors.New("invalid sort parameter")

const taskColumns = "id, title, description, status, priority, category, due_date, created_at, updated_at"

// sortColumns and sortOrders are the closed allow-lists for ORDER BY
// construction. Caller input is looked up here and never reaches the
// statement text directly.
var sortColumns = map[string]string{
	"due_date":   "due_date",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

var sortOrders = map[string]string{
	"asc":  "ASC",
	"desc": "DESC",
}

// ListFilters are the optional List criteria. A nil pointer imposes no
// constraint; provided values are matched by exact equality. An empty
// Order defaults to ascending.
type ListFilters struct {
	Status   *string
	Priority *string
	Category *string
	SortBy   string
	Order    string
}

// TaskRepository runs parameterized queries against the tasks table. Each
// method borrows a connection from the pool for its own duration; nothing
// is held across calls.
type TaskRepository struct {
	DB *sqlx.DB
}

// NewTaskRepository creates a repository on top of an existing pool.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

// Create inserts a new task and returns the freshly read-back record, so
// the caller sees the generated id and timestamps exactly as stored.
func (r *TaskRepository) Create(ctx context.Context, req *models.CreateTaskRequest) (*models.Task, error) {
	result, err := r.DB.ExecContext(ctx,
		"INSERT INTO tasks (title, description, status, priority, category, due_date) VALUES (?, ?, ?, ?, ?, ?)",
		req.Title, req.Description, req.Status, req.Priority, req.Category, req.DueDate,
	)
	if err != nil {
		log.Printf("Failed to insert task: %v", err)
		return nil, fmt.Errorf("could not insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}

	created, err := r.FindByID(ctx, id)
	if err != nil {
		// The insert committed but the row cannot be read back. A concurrent
		// delete can cause this; surface it rather than returning a partial record.
		log.Printf("Read-back after insert failed for task %d: %v", id, err)
		return nil, fmt.Errorf("could not read back created task: %w", err)
	}
	return created, nil
}

// List returns the tasks matching the conjunction of the provided filters,
// ordered per SortBy/Order when given and in natural order otherwise. No
// matches is an empty slice, not an error.
func (r *TaskRepository) List(ctx context.Context, f ListFilters) ([]models.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks"

	var clauses []string
	var args []any
	if f.Status != nil {
		clauses = append(clauses, "status = ?")
		args = append(args, *f.Status)
	}
	if f.Priority != nil {
		clauses = append(clauses, "priority = ?")
		args = append(args, *f.Priority)
	}
	if f.Category != nil {
		clauses = append(clauses, "category = ?")
		args = append(args, *f.Category)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	if f.SortBy != "" {
		column, ok := sortColumns[f.SortBy]
		if !ok {
			return nil, fmt.Errorf("%w: sort_by %q", ErrInvalidSort, f.SortBy)
		}
		order := f.Order
		if order == "" {
			order = "asc"
		}
		direction, ok := sortOrders[order]
		if !ok {
			return nil, fmt.Errorf("%w: order %q", ErrInvalidSort, f.Order)
		}
		query += " ORDER BY " + column + " " + direction
	}

	var tasks []models.Task
	if err := r.DB.SelectContext(ctx, &tasks, query, args...); err != nil {
		log.Printf("Failed to query tasks: %v", err)
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	return tasks, nil
}

// FindByID fetches a single task by id.
func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	var t models.Task
	err := r.DB.GetContext(ctx, &t, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		log.Printf("Failed to query task %d: %v", id, err)
		return nil, fmt.Errorf("could not query task: %w", err)
	}
	return &t, nil
}

// Replace overwrites every mutable column unconditionally; a nil
// description becomes NULL rather than keeping the prior value. Absence is
// detected by the read-back, not by RowsAffected: MySQL reports zero
// affected rows when the new values equal the old ones, which would be
// indistinguishable from a missing row.
func (r *TaskRepository) Replace(ctx context.Context, id int64, req *models.CreateTaskRequest) (*models.Task, error) {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?, category = ?, due_date = ? WHERE id = ?",
		req.Title, req.Description, req.Status, req.Priority, req.Category, req.DueDate, id,
	)
	if err != nil {
		log.Printf("Failed to update task %d: %v", id, err)
		return nil, fmt.Errorf("could not update task: %w", err)
	}
	return r.FindByID(ctx, id)
}

// Patch updates only the non-nil fields of req. The statement always runs,
// even for an empty patch, so the updated_at trigger fires on every call.
func (r *TaskRepository) Patch(ctx context.Context, id int64, req *models.UpdateTaskRequest) (*models.Task, error) {
	var assignments []string
	var args []any
	if req.Title != nil {
		assignments = append(assignments, "title = ?")
		args = append(args, *req.Title)
	}
	if req.Description != nil {
		assignments = append(assignments, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Status != nil {
		assignments = append(assignments, "status = ?")
		args = append(args, *req.Status)
	}
	if req.Priority != nil {
		assignments = append(assignments, "priority = ?")
		args = append(args, *req.Priority)
	}
	if req.Category != nil {
		assignments = append(assignments, "category = ?")
		args = append(args, *req.Category)
	}
	if req.DueDate != nil {
		assignments = append(assignments, "due_date = ?")
		args = append(args, *req.DueDate)
	}
	if len(assignments) == 0 {
		// No columns to touch; this still fires the trigger.
		assignments = append(assignments, "id = id")
	}

	query := "UPDATE tasks SET " + strings.Join(assignments, ", ") + " WHERE id = ?"
	args = append(args, id)

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Printf("Failed to patch task %d: %v", id, err)
		return nil, fmt.Errorf("could not patch task: %w", err)
	}
	return r.FindByID(ctx, id)
}

// Delete confirms the task exists and removes it. A missing task yields
// (false, nil); true is returned only after the delete executed.
func (r *TaskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var existing int64
	err := r.DB.GetContext(ctx, &existing, "SELECT id FROM tasks WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		log.Printf("Failed to check task %d before delete: %v", id, err)
		return false, fmt.Errorf("could not check task: %w", err)
	}

	if _, err := r.DB.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id); err != nil {
		log.Printf("Failed to delete task %d: %v", id, err)
		return false, fmt.Errorf("could not delete task: %w", err)
	}
	return true, nil
}

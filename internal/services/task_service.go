// Package services holds the business-logic layer between handlers and
// repositories.
package services

import (
	"context"

	"go-task-tracker/internal/models"
	"go-task-tracker/internal/repositories"
)

// TaskService wraps the task repository. The layer is thin today but keeps
// handlers decoupled from storage details.
type TaskService struct {
	taskRepo *repositories.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo *repositories.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// CreateTask stores a new task and returns the full created record.
func (s *TaskService) CreateTask(ctx context.Context, req *models.CreateTaskRequest) (*models.Task, error) {
	return s.taskRepo.Create(ctx, req)
}

// ListTasks returns tasks matching the filters.
func (s *TaskService) ListTasks(ctx context.Context, f repositories.ListFilters) ([]models.Task, error) {
	return s.taskRepo.List(ctx, f)
}

// GetTaskByID fetches a single task.
func (s *TaskService) GetTaskByID(ctx context.Context, id int64) (*models.Task, error) {
	return s.taskRepo.FindByID(ctx, id)
}

// ReplaceTask overwrites every mutable field of the task.
func (s *TaskService) ReplaceTask(ctx context.Context, id int64, req *models.CreateTaskRequest) (*models.Task, error) {
	return s.taskRepo.Replace(ctx, id, req)
}

// PatchTask updates only the provided fields of the task.
func (s *TaskService) PatchTask(ctx context.Context, id int64, req *models.UpdateTaskRequest) (*models.Task, error) {
	return s.taskRepo.Patch(ctx, id, req)
}

// DeleteTask removes the task; false means it did not exist.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) (bool, error) {
	return s.taskRepo.Delete(ctx, id)
}

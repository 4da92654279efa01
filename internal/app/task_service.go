package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	coretask "github.com/example/tpflow/internal/core/task"
	"github.com/example/tpflow/internal/ports/primary"
	"github.com/example/tpflow/internal/ports/secondary"
)

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskRepo    secondary.TaskRepository
	projectRepo secondary.ProjectRepository
	userRepo    secondary.UserRepository
}

// NewTaskService creates a new TaskService with injected dependencies.
func NewTaskService(
	taskRepo secondary.TaskRepository,
	projectRepo secondary.ProjectRepository,
	userRepo secondary.UserRepository,
) *TaskServiceImpl {
	return &TaskServiceImpl{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateTask creates a new task on a project.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, req primary.CreateTaskRequest) (*primary.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, Validationf("task title is required")
	}

	priority := req.Priority
	if priority == "" {
		priority = coretask.PriorityMedium
	}
	if !coretask.ValidPriority(priority) {
		return nil, Validationf("invalid priority %q (must be low, medium or high)", priority)
	}

	// Validate project exists in the actor's tenant
	if _, err := visibleProject(ctx, s.projectRepo, req.ProjectID); err != nil {
		return nil, err
	}

	// Validate optional assignee exists
	if req.AssignedTo != "" {
		if _, err := s.userRepo.GetByID(ctx, req.AssignedTo); err != nil {
			return nil, Validationf("assignee %s not found", req.AssignedTo)
		}
	}

	record := &secondary.TaskRecord{
		ID:          uuid.NewString(),
		ProjectID:   req.ProjectID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      string(coretask.InitialStatus()),
		Priority:    priority,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	}

	if err := s.taskRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	created, err := s.taskRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created task: %w", err)
	}
	return s.recordToTask(created), nil
}

// GetTask retrieves a task by ID.
func (s *TaskServiceImpl) GetTask(ctx context.Context, taskID string) (*primary.Task, error) {
	record, err := s.getScoped(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return s.recordToTask(record), nil
}

// ListTasks lists a project's tasks with optional filters.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, filters primary.TaskFilters) ([]*primary.Task, error) {
	if filters.ProjectID != "" {
		if _, err := visibleProject(ctx, s.projectRepo, filters.ProjectID); err != nil {
			return nil, err
		}
	}

	records, err := s.taskRepo.List(ctx, secondary.TaskFilters{
		ProjectID:  filters.ProjectID,
		Status:     filters.Status,
		AssignedTo: filters.AssignedTo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*primary.Task, len(records))
	for i, r := range records {
		tasks[i] = s.recordToTask(r)
	}
	return tasks, nil
}

// UpdateTask updates a task's editable fields.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, req primary.UpdateTaskRequest) (*primary.Task, error) {
	record, err := s.getScoped(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, Validationf("task title cannot be empty")
		}
		record.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		record.Description = *req.Description
	}
	if req.Priority != nil {
		if !coretask.ValidPriority(*req.Priority) {
			return nil, Validationf("invalid priority %q (must be low, medium or high)", *req.Priority)
		}
		record.Priority = *req.Priority
	}
	if req.AssignedTo != nil {
		if *req.AssignedTo != "" {
			if _, err := s.userRepo.GetByID(ctx, *req.AssignedTo); err != nil {
				return nil, Validationf("assignee %s not found", *req.AssignedTo)
			}
		}
		record.AssignedTo = *req.AssignedTo
	}
	if req.DueDate != nil {
		record.DueDate = req.DueDate
	}

	if err := s.taskRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	updated, err := s.taskRepo.GetByID(ctx, req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated task: %w", err)
	}
	return s.recordToTask(updated), nil
}

// SetTaskStatus transitions a task, stamping completed_at on
// completion and clearing it when a completed task reopens.
func (s *TaskServiceImpl) SetTaskStatus(ctx context.Context, taskID, status string) (*primary.Task, error) {
	if !coretask.ValidStatus(status) {
		return nil, Validationf("invalid task status %q (must be open, in_progress or completed)", status)
	}

	record, err := s.getScoped(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if record.Status != status {
		transition := coretask.ApplyStatusTransition(coretask.Status(record.Status), coretask.Status(status), time.Now())
		record.Status = string(transition.NewStatus)
		if transition.CompletedAt != nil {
			record.CompletedAt = transition.CompletedAt
		}
		if transition.ClearCompletedAt {
			record.CompletedAt = nil
		}

		if err := s.taskRepo.Update(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to update task status: %w", err)
		}
	}

	updated, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated task: %w", err)
	}
	return s.recordToTask(updated), nil
}

// DeleteTask deletes a task.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, taskID string) error {
	if _, err := s.getScoped(ctx, taskID); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, taskID)
}

// Helper methods

// getScoped loads a task and hides it from foreign tenants via the
// owning project.
func (s *TaskServiceImpl) getScoped(ctx context.Context, taskID string) (*secondary.TaskRecord, error) {
	record, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, record.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get owning project: %w", err)
	}
	if !inTenant(ctx, project.TenantID) {
		return nil, NotFoundf("task %s not found", taskID)
	}
	return record, nil
}

func (s *TaskServiceImpl) recordToTask(r *secondary.TaskRecord) *primary.Task {
	return &primary.Task{
		ID:          r.ID,
		ProjectID:   r.ProjectID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		AssignedTo:  r.AssignedTo,
		DueDate:     r.DueDate,
		CompletedAt: r.CompletedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Ensure TaskServiceImpl implements the interface
var _ primary.TaskService = (*TaskServiceImpl)(nil)

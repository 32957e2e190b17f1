package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"taskly-be/internal/apperror"
	"taskly-be/internal/entities"
	"taskly-be/internal/models"
	"taskly-be/internal/repository"
	"taskly-be/internal/validation"
)

const (
	msgTaskNotFound = "Task not found"
	msgNotOwner     = "This action is unauthorized."
)

// ListResult is the caller together with their tasks
type ListResult struct {
	User  *entities.User
	Tasks []*entities.Task
}

// TaskService defines the interface for task business logic. Every method
// authenticates token before touching the task store.
type TaskService interface {
	Create(ctx context.Context, token string, req *models.CreateTaskRequest) (*entities.Task, error)
	List(ctx context.Context, token string) (*ListResult, error)
	Get(ctx context.Context, token, taskID string) (*entities.Task, error)
	Update(ctx context.Context, token, taskID string, req *models.UpdateTaskRequest) (*entities.Task, error)
	Delete(ctx context.Context, token, taskID string) error
}

type taskService struct {
	taskRepo repository.TaskRepository
	authn    *Authenticator
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo repository.TaskRepository, authn *Authenticator) TaskService {
	return &taskService{taskRepo: taskRepo, authn: authn}
}

func (s *taskService) Create(ctx context.Context, token string, req *models.CreateTaskRequest) (*entities.Task, error) {
	user, err := s.authn.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	status := entities.TaskStatusPending
	if req.Status != "" {
		status = entities.TaskStatus(req.Status)
	}

	task := &entities.Task{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		DueDate:     req.DueDate,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, apperror.Internal("failed to create task", err)
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, token string) (*ListResult, error) {
	user, err := s.authn.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.FindByOwner(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal("failed to list tasks", err)
	}
	return &ListResult{User: user, Tasks: tasks}, nil
}

func (s *taskService) Get(ctx context.Context, token, taskID string) (*entities.Task, error) {
	user, err := s.authn.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.ownedTask(ctx, user, taskID)
}

func (s *taskService) Update(ctx context.Context, token, taskID string, req *models.UpdateTaskRequest) (*entities.Task, error) {
	user, err := s.authn.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	task, err := s.ownedTask(ctx, user, taskID)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Status != nil {
		task.Status = entities.TaskStatus(*req.Status)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, storeError(err, "failed to update task")
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, token, taskID string) error {
	user, err := s.authn.Authenticate(ctx, token)
	if err != nil {
		return err
	}

	if _, err := s.ownedTask(ctx, user, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return storeError(err, "failed to delete task")
	}
	return nil
}

// ownedTask loads taskID and checks that user owns it.
func (s *taskService) ownedTask(ctx context.Context, user *entities.User, taskID string) (*entities.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, storeError(err, "failed to find task")
	}
	if task.UserID != user.ID {
		return nil, apperror.New(apperror.KindForbidden, msgNotOwner)
	}
	return task, nil
}

// storeError maps a repository failure to an application error. A missing
// row is a client error, anything else is internal.
func storeError(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.New(apperror.KindNotFound, msgTaskNotFound)
	}
	return apperror.Internal(message, err)
}

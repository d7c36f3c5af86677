package service

import (
	"context"

	"github.com/optima-app/api-server-go/internal/audit"
	apperrors "github.com/optima-app/api-server-go/internal/errors"
	"github.com/optima-app/api-server-go/internal/model"
	"github.com/optima-app/api-server-go/internal/repository"
)

// TaskService manages the task templates admins curate for end users.
type TaskService struct {
	taskRepo repository.TaskRepository
	recorder *audit.Recorder
}

func NewTaskService(taskRepo repository.TaskRepository, recorder *audit.Recorder) *TaskService {
	return &TaskService{taskRepo: taskRepo, recorder: recorder}
}

func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return tasks, nil
}

func (s *TaskService) Create(ctx context.Context, adminID string, params model.CreateTaskParams) (*model.Task, error) {
	if params.Title == "" {
		return nil, apperrors.MissingRequired("title")
	}
	if params.Category == "" {
		params.Category = "General"
	}

	id, err := s.taskRepo.Create(ctx, params)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	s.recorder.Record(ctx, adminID, model.ActionTaskCreated, map[string]any{
		"task_id":    id,
		"task_title": params.Title,
	})

	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, adminID, id string, params model.UpdateTaskParams) error {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if task == nil {
		return apperrors.NotFound("Task")
	}

	if err := s.taskRepo.Update(ctx, id, params); err != nil {
		return apperrors.Database(err)
	}

	s.recorder.Record(ctx, adminID, model.ActionTaskUpdated, map[string]any{
		"task_id": id,
	})
	return nil
}

func (s *TaskService) Delete(ctx context.Context, adminID, id string) error {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if task == nil {
		return apperrors.NotFound("Task")
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return apperrors.Database(err)
	}

	s.recorder.Record(ctx, adminID, model.ActionTaskDeleted, map[string]any{
		"task_id":    id,
		"task_title": task.Title,
	})
	return nil
}

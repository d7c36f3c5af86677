package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/optima-app/api-server-go/internal/model"
)

const (
	tasksCollection     = "tasks"
	userTasksCollection = "user_tasks"
)

type TaskRepository interface {
	FindAll(ctx context.Context) ([]model.Task, error)
	FindByID(ctx context.Context, id string) (*model.Task, error)
	Create(ctx context.Context, params model.CreateTaskParams) (string, error)
	Update(ctx context.Context, id string, params model.UpdateTaskParams) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountCompleted(ctx context.Context) (int, error)
}

type UserTaskRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.UserTask, error)
	Count(ctx context.Context) (int, error)
	CountCompleted(ctx context.Context) (int, error)
}

type taskRepo struct {
	fs *firestore.Client
}

func NewTaskRepository(fs *firestore.Client) TaskRepository {
	return &taskRepo{fs: fs}
}

func (r *taskRepo) doc(id string) *firestore.DocumentRef {
	return r.fs.Collection(tasksCollection).Doc(id)
}

func (r *taskRepo) FindAll(ctx context.Context) ([]model.Task, error) {
	docs, err := r.fs.Collection(tasksCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(docs))
	for _, doc := range docs {
		task, err := decode[model.Task](doc)
		if err != nil {
			return nil, err
		}
		task.ID = doc.Ref.ID
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

func (r *taskRepo) FindByID(ctx context.Context, id string) (*model.Task, error) {
	doc, err := r.doc(id).Get(ctx)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	task, err := decode[model.Task](doc)
	if err != nil {
		return nil, err
	}
	task.ID = doc.Ref.ID
	return task, nil
}

func (r *taskRepo) Create(ctx context.Context, params model.CreateTaskParams) (string, error) {
	ref := r.fs.Collection(tasksCollection).NewDoc()
	_, err := ref.Set(ctx, map[string]any{
		"title":       params.Title,
		"reward":      params.Reward,
		"category":    params.Category,
		"description": params.Description,
		"created_at":  firestore.ServerTimestamp,
	})
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (r *taskRepo) Update(ctx context.Context, id string, params model.UpdateTaskParams) error {
	updates := []firestore.Update{
		{Path: "updated_at", Value: firestore.ServerTimestamp},
	}
	if params.Title != nil {
		updates = append(updates, firestore.Update{Path: "title", Value: *params.Title})
	}
	if params.Reward != nil {
		updates = append(updates, firestore.Update{Path: "reward", Value: *params.Reward})
	}
	if params.Category != nil {
		updates = append(updates, firestore.Update{Path: "category", Value: *params.Category})
	}
	if params.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *params.Description})
	}
	if params.Completed != nil {
		updates = append(updates, firestore.Update{Path: "completed", Value: *params.Completed})
	}

	_, err := r.doc(id).Update(ctx, updates)
	return err
}

func (r *taskRepo) Delete(ctx context.Context, id string) error {
	_, err := r.doc(id).Delete(ctx)
	return err
}

func (r *taskRepo) Count(ctx context.Context) (int, error) {
	docs, err := r.fs.Collection(tasksCollection).Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (r *taskRepo) CountCompleted(ctx context.Context) (int, error) {
	docs, err := r.fs.Collection(tasksCollection).
		Where("completed", "==", true).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

type userTaskRepo struct {
	fs *firestore.Client
}

func NewUserTaskRepository(fs *firestore.Client) UserTaskRepository {
	return &userTaskRepo{fs: fs}
}

func (r *userTaskRepo) ListByUser(ctx context.Context, userID string) ([]model.UserTask, error) {
	docs, err := r.fs.Collection(userTasksCollection).
		Where("userId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	tasks := make([]model.UserTask, 0, len(docs))
	for _, doc := range docs {
		task, err := decode[model.UserTask](doc)
		if err != nil {
			return nil, err
		}
		task.ID = doc.Ref.ID
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

func (r *userTaskRepo) Count(ctx context.Context) (int, error) {
	docs, err := r.fs.Collection(userTasksCollection).Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (r *userTaskRepo) CountCompleted(ctx context.Context) (int, error) {
	docs, err := r.fs.Collection(userTasksCollection).
		Where("completed", "==", true).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

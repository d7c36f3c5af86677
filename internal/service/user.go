package service

import (
	"context"

	"github.com/optima-app/api-server-go/internal/audit"
	apperrors "github.com/optima-app/api-server-go/internal/errors"
	"github.com/optima-app/api-server-go/internal/model"
	"github.com/optima-app/api-server-go/internal/repository"
	"github.com/optima-app/api-server-go/internal/util"
)

// UserAdminService is the admin-side view of end users: listing, per-user
// task and screentime data, password resets and suspension.
type UserAdminService struct {
	userRepo       repository.UserRepository
	userTaskRepo   repository.UserTaskRepository
	screentimeRepo repository.ScreentimeRepository
	recorder       *audit.Recorder
}

func NewUserAdminService(
	userRepo repository.UserRepository,
	userTaskRepo repository.UserTaskRepository,
	screentimeRepo repository.ScreentimeRepository,
	recorder *audit.Recorder,
) *UserAdminService {
	return &UserAdminService{
		userRepo:       userRepo,
		userTaskRepo:   userTaskRepo,
		screentimeRepo: screentimeRepo,
		recorder:       recorder,
	}
}

func (s *UserAdminService) List(ctx context.Context) ([]model.UserSummary, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return users, nil
}

func (s *UserAdminService) Tasks(ctx context.Context, userID string) ([]model.UserTask, error) {
	tasks, err := s.userTaskRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return tasks, nil
}

func (s *UserAdminService) Screentime(ctx context.Context, userID string) ([]model.ScreentimeRecord, error) {
	records, err := s.screentimeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return records, nil
}

func (s *UserAdminService) ResetPassword(ctx context.Context, adminID, userID, newPassword string) error {
	if newPassword == "" {
		return apperrors.MissingRequired("password")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return apperrors.Database(err)
	}
	if user == nil {
		return apperrors.NotFound("User")
	}

	if err := s.userRepo.SetPasswordDigest(ctx, userID, util.HashPassword(newPassword)); err != nil {
		return apperrors.Database(err)
	}

	s.recorder.Record(ctx, adminID, model.ActionPasswordReset, map[string]any{
		"user_id": userID,
	})
	return nil
}

func (s *UserAdminService) SetSuspended(ctx context.Context, adminID, userID string, suspended bool) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return apperrors.Database(err)
	}
	if user == nil {
		return apperrors.NotFound("User")
	}

	if err := s.userRepo.SetSuspended(ctx, userID, suspended); err != nil {
		return apperrors.Database(err)
	}

	action := model.ActionUserSuspended
	if !suspended {
		action = model.ActionUserReinstated
	}
	s.recorder.Record(ctx, adminID, action, map[string]any{
		"user_id": userID,
	})
	return nil
}

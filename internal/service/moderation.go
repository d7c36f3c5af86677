package service

import (
	"context"

	"github.com/optima-app/api-server-go/internal/audit"
	apperrors "github.com/optima-app/api-server-go/internal/errors"
	"github.com/optima-app/api-server-go/internal/model"
	"github.com/optima-app/api-server-go/internal/repository"
)

// ModerationService is the admin view of posts.
type ModerationService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	recorder    *audit.Recorder
}

func NewModerationService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	recorder *audit.Recorder,
) *ModerationService {
	return &ModerationService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		recorder:    recorder,
	}
}

func (s *ModerationService) ListPosts(ctx context.Context, limit int) ([]model.Post, error) {
	posts, err := s.postRepo.FindAll(ctx, limit)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return posts, nil
}

// DeletePost removes the post, then its comment documents. Comment deletion
// is best effort: the post stays gone even when the comment sweep fails
// partway, and no compensation is attempted.
func (s *ModerationService) DeletePost(ctx context.Context, adminID, postID string) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return apperrors.Database(err)
	}
	if post == nil {
		return apperrors.NotFound("Post")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return apperrors.Database(err)
	}

	s.recorder.Record(ctx, adminID, model.ActionPostDeleted, map[string]any{
		"post_id":     postID,
		"post_author": post.UserID,
	})

	if err := s.commentRepo.DeleteByPost(ctx, postID); err != nil {
		return apperrors.Database(err)
	}
	return nil
}

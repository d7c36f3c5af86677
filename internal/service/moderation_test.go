package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optima-app/api-server-go/internal/audit"
	apperrors "github.com/optima-app/api-server-go/internal/errors"
	"github.com/optima-app/api-server-go/internal/model"
)

func TestModerationDeletePost(t *testing.T) {
	deleted := ""
	posts := &mockPostRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Post, error) {
			return &model.Post{ID: id, UserID: "user-1"}, nil
		},
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	sweptPost := ""
	comments := &mockCommentRepo{
		deleteByPostFunc: func(ctx context.Context, postID string) error {
			sweptPost = postID
			return nil
		},
	}
	auditRepo := &mockAuditRepo{}
	svc := NewModerationService(posts, comments, audit.NewRecorder(auditRepo))

	require.NoError(t, svc.DeletePost(context.Background(), "admin-1", "post-1"))
	assert.Equal(t, "post-1", deleted)
	assert.Equal(t, "post-1", sweptPost)

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, model.ActionPostDeleted, auditRepo.entries[0].Action)
	assert.Equal(t, "user-1", auditRepo.entries[0].Details["post_author"])
}

func TestModerationDeletePostNotFound(t *testing.T) {
	svc := NewModerationService(&mockPostRepo{}, &mockCommentRepo{}, audit.NewRecorder(&mockAuditRepo{}))

	err := svc.DeletePost(context.Background(), "admin-1", "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
}

func TestModerationListPosts(t *testing.T) {
	posts := &mockPostRepo{
		findAllFunc: func(ctx context.Context, limit int) ([]model.Post, error) {
			return []model.Post{{ID: "p2"}, {ID: "p1"}}, nil
		},
	}
	svc := NewModerationService(posts, &mockCommentRepo{}, audit.NewRecorder(&mockAuditRepo{}))

	listed, err := svc.ListPosts(context.Background(), 50)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

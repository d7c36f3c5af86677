package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/optima-app/api-server-go/internal/errors"
	"github.com/optima-app/api-server-go/internal/model"
	"github.com/optima-app/api-server-go/internal/repository"
)

// SocialService covers the user-facing social graph: posts, feeds, likes,
// comments, friends and follows.
type SocialService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

func NewSocialService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
) *SocialService {
	return &SocialService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

func (s *SocialService) CreatePost(ctx context.Context, userID, content string) (string, error) {
	if content == "" {
		return "", apperrors.MissingRequired("content")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", apperrors.Database(err)
	}
	if user == nil {
		return "", apperrors.NotFound("User")
	}

	id, err := s.postRepo.Create(ctx, userID, user.Username, content)
	if err != nil {
		return "", apperrors.Database(err)
	}
	return id, nil
}

func (s *SocialService) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if post == nil {
		return nil, apperrors.NotFound("Post")
	}
	return post, nil
}

// FriendsFeed returns recent posts from the user and their friends.
func (s *SocialService) FriendsFeed(ctx context.Context, userID string, limit int) ([]model.Post, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	authors := []string{userID}
	if user != nil {
		authors = append(user.Friends, userID)
	}

	posts, err := s.postRepo.FindByUserIDs(ctx, authors, limit)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return posts, nil
}

// Feed pages the global timeline. The returned cursor is the last post ID,
// empty once the feed is exhausted.
func (s *SocialService) Feed(ctx context.Context, limit int, afterID string) (*model.FeedPage, error) {
	posts, err := s.postRepo.Feed(ctx, limit, afterID)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	page := &model.FeedPage{Posts: posts}
	if len(posts) > 0 {
		page.Cursor = posts[len(posts)-1].ID
	}
	return page, nil
}

// ToggleLike flips the user's like on a post and reports the new state.
// Read-then-update: two concurrent toggles can race, last write wins.
func (s *SocialService) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return false, apperrors.Database(err)
	}
	if post == nil {
		return false, apperrors.NotFound("Post")
	}

	hasLiked := false
	for _, id := range post.Likes {
		if id == userID {
			hasLiked = true
			break
		}
	}

	if hasLiked {
		err = s.postRepo.RemoveLike(ctx, postID, userID)
	} else {
		err = s.postRepo.AddLike(ctx, postID, userID)
	}
	if err != nil {
		return false, apperrors.Database(err)
	}
	return !hasLiked, nil
}

// LikeDetails resolves each liking user's name, skipping users that no
// longer exist.
func (s *SocialService) LikeDetails(ctx context.Context, postID string) ([]model.LikeDetail, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if post == nil {
		return nil, apperrors.NotFound("Post")
	}

	details := make([]model.LikeDetail, 0, len(post.Likes))
	for _, userID := range post.Likes {
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return nil, apperrors.Database(err)
		}
		if user == nil {
			continue
		}
		details = append(details, model.LikeDetail{
			UserID:   userID,
			Username: user.Username,
		})
	}
	return details, nil
}

func (s *SocialService) LikeStatus(ctx context.Context, postID, userID string) (bool, error) {
	liked, err := s.postRepo.HasLikeMarker(ctx, postID, userID)
	if err != nil {
		return false, apperrors.Database(err)
	}
	return liked, nil
}

func (s *SocialService) AddComment(ctx context.Context, postID, userID, content string) (*model.Comment, error) {
	if content == "" {
		return nil, apperrors.MissingRequired("content")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if post == nil {
		return nil, apperrors.NotFound("Post")
	}

	comment := model.Comment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  user.Username,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.postRepo.AddEmbeddedComment(ctx, postID, comment); err != nil {
		return nil, apperrors.Database(err)
	}
	return &comment, nil
}

func (s *SocialService) Comments(ctx context.Context, postID string, limit int, afterID string) (*model.CommentPage, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID, limit, afterID)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	page := &model.CommentPage{Comments: comments}
	if len(comments) > 0 {
		page.Cursor = comments[len(comments)-1].ID
	}
	return page, nil
}

// AddFriend links both users. Not atomic across the two documents.
func (s *SocialService) AddFriend(ctx context.Context, userID, friendID string) error {
	if userID == friendID {
		return apperrors.InvalidInput("friendId", "cannot befriend yourself")
	}
	if err := s.userRepo.AddFriend(ctx, userID, friendID); err != nil {
		return apperrors.Database(err)
	}
	return nil
}

func (s *SocialService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	if err := s.userRepo.RemoveFriend(ctx, userID, friendID); err != nil {
		return apperrors.Database(err)
	}
	return nil
}

// ToggleFollow flips the follow edge and adjusts the target's follower
// counter. Returns true when the result is "following".
func (s *SocialService) ToggleFollow(ctx context.Context, followerID, targetID string) (bool, error) {
	if followerID == targetID {
		return false, apperrors.InvalidInput("targetId", "cannot follow yourself")
	}

	follower, err := s.userRepo.FindByID(ctx, followerID)
	if err != nil {
		return false, apperrors.Database(err)
	}
	if follower == nil {
		return false, apperrors.NotFound("Follower user")
	}

	following := false
	for _, id := range follower.Following {
		if id == targetID {
			following = true
			break
		}
	}

	if following {
		if err := s.userRepo.Unfollow(ctx, followerID, targetID); err != nil {
			return false, apperrors.Database(err)
		}
		return false, nil
	}

	if err := s.userRepo.Follow(ctx, followerID, targetID); err != nil {
		return false, apperrors.Database(err)
	}
	return true, nil
}

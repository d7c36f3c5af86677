package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/optima-app/api-server-go/internal/model"
)

const (
	postsCollection    = "posts"
	commentsCollection = "comments"
	likesCollection    = "likes"
)

type PostRepository interface {
	Create(ctx context.Context, userID, username, content string) (string, error)
	FindByID(ctx context.Context, id string) (*model.Post, error)
	FindAll(ctx context.Context, limit int) ([]model.Post, error)
	FindByUserIDs(ctx context.Context, userIDs []string, limit int) ([]model.Post, error)
	Feed(ctx context.Context, limit int, afterID string) ([]model.Post, error)
	Delete(ctx context.Context, id string) error
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
	HasLikeMarker(ctx context.Context, postID, userID string) (bool, error)
	AddEmbeddedComment(ctx context.Context, postID string, comment model.Comment) error
	Count(ctx context.Context) (int, error)
}

type CommentRepository interface {
	ListByPost(ctx context.Context, postID string, limit int, afterID string) ([]model.Comment, error)
	DeleteByPost(ctx context.Context, postID string) error
}

type postRepo struct {
	fs *firestore.Client
}

func NewPostRepository(fs *firestore.Client) PostRepository {
	return &postRepo{fs: fs}
}

func (r *postRepo) doc(id string) *firestore.DocumentRef {
	return r.fs.Collection(postsCollection).Doc(id)
}

func (r *postRepo) Create(ctx context.Context, userID, username, content string) (string, error) {
	ref := r.fs.Collection(postsCollection).NewDoc()
	_, err := ref.Set(ctx, map[string]any{
		"userId":    userID,
		"username":  username,
		"content":   content,
		"likes":     []string{},
		"comments":  []model.Comment{},
		"createdAt": firestore.ServerTimestamp,
	})
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (r *postRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	doc, err := r.doc(id).Get(ctx)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	post, err := decode[model.Post](doc)
	if err != nil {
		return nil, err
	}
	post.ID = doc.Ref.ID
	return post, nil
}

func (r *postRepo) FindAll(ctx context.Context, limit int) ([]model.Post, error) {
	q := r.fs.Collection(postsCollection).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)
	return r.collect(ctx, q)
}

// FindByUserIDs returns recent posts authored by any of the given users.
// Firestore caps "in" filters at 30 values; callers keep friend lists small.
func (r *postRepo) FindByUserIDs(ctx context.Context, userIDs []string, limit int) ([]model.Post, error) {
	if len(userIDs) == 0 {
		return []model.Post{}, nil
	}
	q := r.fs.Collection(postsCollection).
		Where("userId", "in", userIDs).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)
	return r.collect(ctx, q)
}

// Feed pages the global timeline with a snapshot cursor. An unknown afterID
// restarts from the top rather than failing.
func (r *postRepo) Feed(ctx context.Context, limit int, afterID string) ([]model.Post, error) {
	q := r.fs.Collection(postsCollection).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)

	if afterID != "" {
		cursor, err := r.doc(afterID).Get(ctx)
		if err != nil && !IsNotFound(err) {
			return nil, err
		}
		if err == nil && cursor.Exists() {
			q = q.StartAfter(cursor)
		}
	}

	return r.collect(ctx, q)
}

func (r *postRepo) collect(ctx context.Context, q firestore.Query) ([]model.Post, error) {
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	posts := make([]model.Post, 0, len(docs))
	for _, doc := range docs {
		post, err := decode[model.Post](doc)
		if err != nil {
			return nil, err
		}
		post.ID = doc.Ref.ID
		posts = append(posts, *post)
	}
	return posts, nil
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	_, err := r.doc(id).Delete(ctx)
	return err
}

func (r *postRepo) AddLike(ctx context.Context, postID, userID string) error {
	_, err := r.doc(postID).Update(ctx, []firestore.Update{
		{Path: "likes", Value: firestore.ArrayUnion(userID)},
	})
	return err
}

func (r *postRepo) RemoveLike(ctx context.Context, postID, userID string) error {
	_, err := r.doc(postID).Update(ctx, []firestore.Update{
		{Path: "likes", Value: firestore.ArrayRemove(userID)},
	})
	return err
}

// HasLikeMarker checks the per-(post,user) marker document the client writes.
func (r *postRepo) HasLikeMarker(ctx context.Context, postID, userID string) (bool, error) {
	doc, err := r.fs.Collection(likesCollection).
		Doc(fmt.Sprintf("%s_%s", postID, userID)).
		Get(ctx)
	if IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return doc.Exists(), nil
}

func (r *postRepo) AddEmbeddedComment(ctx context.Context, postID string, comment model.Comment) error {
	_, err := r.doc(postID).Update(ctx, []firestore.Update{
		{Path: "comments", Value: firestore.ArrayUnion(comment)},
	})
	return err
}

func (r *postRepo) Count(ctx context.Context) (int, error) {
	docs, err := r.fs.Collection(postsCollection).Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

type commentRepo struct {
	fs *firestore.Client
}

func NewCommentRepository(fs *firestore.Client) CommentRepository {
	return &commentRepo{fs: fs}
}

func (r *commentRepo) ListByPost(ctx context.Context, postID string, limit int, afterID string) ([]model.Comment, error) {
	q := r.fs.Collection(commentsCollection).
		Where("post_id", "==", postID).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)

	if afterID != "" {
		cursor, err := r.fs.Collection(commentsCollection).Doc(afterID).Get(ctx)
		if err != nil && !IsNotFound(err) {
			return nil, err
		}
		if err == nil && cursor.Exists() {
			q = q.StartAfter(cursor)
		}
	}

	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	comments := make([]model.Comment, 0, len(docs))
	for _, doc := range docs {
		comment, err := decode[model.Comment](doc)
		if err != nil {
			return nil, err
		}
		comment.ID = doc.Ref.ID
		comments = append(comments, *comment)
	}
	return comments, nil
}

// DeleteByPost removes comment documents one by one. Best effort: a failure
// partway leaves earlier deletions in place, with no compensation.
func (r *commentRepo) DeleteByPost(ctx context.Context, postID string) error {
	docs, err := r.fs.Collection(commentsCollection).
		Where("post_id", "==", postID).
		Documents(ctx).GetAll()
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return err
		}
	}
	return nil
}

package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/optima-app/api-server-go/internal/model"
)

const usersCollection = "users"

// U+F8FF is the highest code point Firestore orders, so the range
// [term, term+prefixUpperBound] covers every string prefixed by term.
const prefixUpperBound = "\uf8ff"

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, id, email, username string) error
	FindAll(ctx context.Context) ([]model.UserSummary, error)
	SearchByUsername(ctx context.Context, term string, limit int) ([]model.User, error)
	AddFriend(ctx context.Context, userID, friendID string) error
	RemoveFriend(ctx context.Context, userID, friendID string) error
	Follow(ctx context.Context, followerID, targetID string) error
	Unfollow(ctx context.Context, followerID, targetID string) error
	UpdateProfile(ctx context.Context, id string, updates map[string]any) error
	SetSuspended(ctx context.Context, id string, suspended bool) error
	SetPasswordDigest(ctx context.Context, id, digest string) error
	TouchLastLogin(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountActiveSince(ctx context.Context, since time.Time) (int, error)
}

type userRepo struct {
	fs *firestore.Client
}

func NewUserRepository(fs *firestore.Client) UserRepository {
	return &userRepo{fs: fs}
}

func (r *userRepo) doc(id string) *firestore.DocumentRef {
	return r.fs.Collection(usersCollection).Doc(id)
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	doc, err := r.doc(id).Get(ctx)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user, err := decode[model.User](doc)
	if err != nil {
		return nil, err
	}
	user.ID = doc.Ref.ID
	return user, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	iter := r.fs.Collection(usersCollection).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user, err := decode[model.User](doc)
	if err != nil {
		return nil, err
	}
	user.ID = doc.Ref.ID
	return user, nil
}

// Create writes the profile document for a freshly registered identity. The
// document ID is the identity provider's UID.
func (r *userRepo) Create(ctx context.Context, id, email, username string) error {
	_, err := r.doc(id).Set(ctx, map[string]any{
		"email":     email,
		"username":  username,
		"friends":   []string{},
		"createdAt": firestore.ServerTimestamp,
	})
	return err
}

func (r *userRepo) FindAll(ctx context.Context) ([]model.UserSummary, error) {
	docs, err := r.fs.Collection(usersCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	summaries := make([]model.UserSummary, 0, len(docs))
	for _, doc := range docs {
		user, err := decode[model.User](doc)
		if err != nil {
			return nil, err
		}
		createdAt := user.CreatedAt
		summaries = append(summaries, model.UserSummary{
			ID:        doc.Ref.ID,
			Username:  user.Username,
			Email:     user.Email,
			CreatedAt: &createdAt,
			LastLogin: user.LastLogin,
			Suspended: user.Suspended,
		})
	}
	return summaries, nil
}

func (r *userRepo) SearchByUsername(ctx context.Context, term string, limit int) ([]model.User, error) {
	docs, err := r.fs.Collection(usersCollection).
		Where("username", ">=", term).
		Where("username", "<=", term+prefixUpperBound).
		Limit(limit).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(docs))
	for _, doc := range docs {
		user, err := decode[model.User](doc)
		if err != nil {
			return nil, err
		}
		user.ID = doc.Ref.ID
		users = append(users, *user)
	}
	return users, nil
}

// AddFriend links both directions. The two updates are separate writes; a
// failure between them leaves a one-sided edge.
func (r *userRepo) AddFriend(ctx context.Context, userID, friendID string) error {
	if _, err := r.doc(userID).Update(ctx, []firestore.Update{
		{Path: "friends", Value: firestore.ArrayUnion(friendID)},
	}); err != nil {
		return err
	}
	_, err := r.doc(friendID).Update(ctx, []firestore.Update{
		{Path: "friends", Value: firestore.ArrayUnion(userID)},
	})
	return err
}

func (r *userRepo) RemoveFriend(ctx context.Context, userID, friendID string) error {
	if _, err := r.doc(userID).Update(ctx, []firestore.Update{
		{Path: "friends", Value: firestore.ArrayRemove(friendID)},
	}); err != nil {
		return err
	}
	_, err := r.doc(friendID).Update(ctx, []firestore.Update{
		{Path: "friends", Value: firestore.ArrayRemove(userID)},
	})
	return err
}

func (r *userRepo) Follow(ctx context.Context, followerID, targetID string) error {
	if _, err := r.doc(followerID).Update(ctx, []firestore.Update{
		{Path: "following", Value: firestore.ArrayUnion(targetID)},
	}); err != nil {
		return err
	}
	_, err := r.doc(targetID).Update(ctx, []firestore.Update{
		{Path: "followers_count", Value: firestore.Increment(1)},
	})
	return err
}

func (r *userRepo) Unfollow(ctx context.Context, followerID, targetID string) error {
	if _, err := r.doc(followerID).Update(ctx, []firestore.Update{
		{Path: "following", Value: firestore.ArrayRemove(targetID)},
	}); err != nil {
		return err
	}
	_, err := r.doc(targetID).Update(ctx, []firestore.Update{
		{Path: "followers_count", Value: firestore.Increment(-1)},
	})
	return err
}

func (r *userRepo) UpdateProfile(ctx context.Context, id string, updates map[string]any) error {
	fields := make([]firestore.Update, 0, len(updates)+1)
	for k, v := range updates {
		fields = append(fields, firestore.Update{Path: k, Value: v})
	}
	fields = append(fields, firestore.Update{Path: "updated_at", Value: firestore.ServerTimestamp})

	_, err := r.doc(id).Update(ctx, fields)
	return err
}

func (r *userRepo) SetSuspended(ctx context.Context, id string, suspended bool) error {
	_, err := r.doc(id).Update(ctx, []firestore.Update{
		{Path: "suspended", Value: suspended},
	})
	return err
}

func (r *userRepo) SetPasswordDigest(ctx context.Context, id, digest string) error {
	_, err := r.doc(id).Update(ctx, []firestore.Update{
		{Path: "password", Value: digest},
	})
	return err
}

func (r *userRepo) TouchLastLogin(ctx context.Context, id string) error {
	_, err := r.doc(id).Update(ctx, []firestore.Update{
		{Path: "lastLogin", Value: firestore.ServerTimestamp},
	})
	return err
}

func (r *userRepo) Count(ctx context.Context) (int, error) {
	docs, err := r.fs.Collection(usersCollection).Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (r *userRepo) CountActiveSince(ctx context.Context, since time.Time) (int, error) {
	docs, err := r.fs.Collection(usersCollection).
		Where("lastLogin", ">=", since).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

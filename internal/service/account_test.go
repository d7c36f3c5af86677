package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/optima-app/api-server-go/internal/errors"
	"github.com/optima-app/api-server-go/internal/model"
)

type mockIdentity struct {
	createUserFunc     func(ctx context.Context, email, password, displayName string) (*model.AuthUser, error)
	getUserByEmailFunc func(ctx context.Context, email string) (*model.AuthUser, error)
}

func (m *mockIdentity) CreateUser(ctx context.Context, email, password, displayName string) (*model.AuthUser, error) {
	if m.createUserFunc != nil {
		return m.createUserFunc(ctx, email, password, displayName)
	}
	return &model.AuthUser{UID: "uid-1", Email: email, DisplayName: displayName}, nil
}

func (m *mockIdentity) GetUserByEmail(ctx context.Context, email string) (*model.AuthUser, error) {
	if m.getUserByEmailFunc != nil {
		return m.getUserByEmailFunc(ctx, email)
	}
	return nil, errors.New("user not found")
}

func TestAccountRegister(t *testing.T) {
	var createdID, createdEmail, createdUsername string
	users := &mockUserRepo{
		createFunc: func(ctx context.Context, id, email, username string) error {
			createdID, createdEmail, createdUsername = id, email, username
			return nil
		},
	}
	svc := NewAccountService(&mockIdentity{}, users)

	authUser, err := svc.Register(context.Background(), "ann@x.com", "s3cret", "ann")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", authUser.UID)

	assert.Equal(t, "uid-1", createdID)
	assert.Equal(t, "ann@x.com", createdEmail)
	assert.Equal(t, "ann", createdUsername)
}

func TestAccountRegisterBadEmail(t *testing.T) {
	svc := NewAccountService(&mockIdentity{}, &mockUserRepo{})

	_, err := svc.Register(context.Background(), "not-an-email", "s3cret", "ann")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.GetCode(err))
}

func TestAccountRegisterProviderFailure(t *testing.T) {
	identity := &mockIdentity{
		createUserFunc: func(ctx context.Context, email, password, displayName string) (*model.AuthUser, error) {
			return nil, errors.New("email already in use")
		},
	}
	svc := NewAccountService(identity, &mockUserRepo{})

	_, err := svc.Register(context.Background(), "ann@x.com", "s3cret", "ann")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeExternal, apperrors.GetCode(err))
}

func TestAccountLogin(t *testing.T) {
	touched := ""
	users := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "uid-1", Email: email, Username: "ann"}, nil
		},
		touchLastLoginFunc: func(ctx context.Context, id string) error {
			touched = id
			return nil
		},
	}
	svc := NewAccountService(&mockIdentity{}, users)

	authUser, err := svc.Login(context.Background(), "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", authUser.UID)
	assert.Equal(t, "ann", authUser.DisplayName)
	assert.Equal(t, "uid-1", touched)
}

func TestAccountLoginBackfillsProfile(t *testing.T) {
	identity := &mockIdentity{
		getUserByEmailFunc: func(ctx context.Context, email string) (*model.AuthUser, error) {
			return &model.AuthUser{UID: "uid-2", Email: email}, nil
		},
	}
	var createdUsername string
	users := &mockUserRepo{
		createFunc: func(ctx context.Context, id, email, username string) error {
			createdUsername = username
			return nil
		},
	}
	svc := NewAccountService(identity, users)

	authUser, err := svc.Login(context.Background(), "bea@x.com")
	require.NoError(t, err)
	assert.Equal(t, "uid-2", authUser.UID)

	// No display name on the identity, so the email prefix fills in.
	assert.Equal(t, "bea", createdUsername)
}

func TestAccountLoginUnknown(t *testing.T) {
	svc := NewAccountService(&mockIdentity{}, &mockUserRepo{})

	_, err := svc.Login(context.Background(), "nobody@x.com")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
}

func TestUpdateProfileWhitelist(t *testing.T) {
	var applied map[string]any
	users := &mockUserRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
		updateProfileFunc: func(ctx context.Context, id string, updates map[string]any) error {
			applied = updates
			return nil
		},
	}
	svc := NewAccountService(&mockIdentity{}, users)

	username := "new-name"
	err := svc.UpdateProfile(context.Background(), "user-1", model.UpdateProfileParams{Username: &username})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"username": "new-name"}, applied)
}

func TestUpdateProfileNoFields(t *testing.T) {
	svc := NewAccountService(&mockIdentity{}, &mockUserRepo{})

	err := svc.UpdateProfile(context.Background(), "user-1", model.UpdateProfileParams{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
}

func TestSearchSkipsSelfAndFlagsFriends(t *testing.T) {
	users := &mockUserRepo{
		searchFunc: func(ctx context.Context, term string, limit int) ([]model.User, error) {
			return []model.User{
				{ID: "me", Username: "ann"},
				{ID: "user-2", Username: "anna", Friends: []string{"me"}},
				{ID: "user-3", Username: "annette"},
			}, nil
		},
	}
	svc := NewAccountService(&mockIdentity{}, users)

	results, err := svc.Search(context.Background(), "ann", "me", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].IsFriend)
	assert.False(t, results[1].IsFriend)
}

func TestSearchEmptyTerm(t *testing.T) {
	svc := NewAccountService(&mockIdentity{}, &mockUserRepo{})

	results, err := svc.Search(context.Background(), "", "me", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

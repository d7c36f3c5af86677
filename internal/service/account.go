package service

import (
	"context"
	"strings"

	apperrors "github.com/optima-app/api-server-go/internal/errors"
	"github.com/optima-app/api-server-go/internal/model"
	"github.com/optima-app/api-server-go/internal/repository"
	"github.com/optima-app/api-server-go/internal/util"
)

// IdentityProvider is the slice of the managed auth service this backend
// uses. End-user credentials live there, never in the document store.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (*model.AuthUser, error)
	GetUserByEmail(ctx context.Context, email string) (*model.AuthUser, error)
}

// AccountService handles end-user registration, login and profiles.
type AccountService struct {
	identity IdentityProvider
	userRepo repository.UserRepository
}

func NewAccountService(identity IdentityProvider, userRepo repository.UserRepository) *AccountService {
	return &AccountService{identity: identity, userRepo: userRepo}
}

// Register creates the identity and its profile document. The document ID is
// the provider-assigned UID.
func (s *AccountService) Register(ctx context.Context, email, password, username string) (*model.AuthUser, error) {
	if !util.IsValidEmail(email) {
		return nil, apperrors.InvalidInput("email", "not a valid address")
	}
	if password == "" {
		return nil, apperrors.MissingRequired("password")
	}
	if username == "" {
		return nil, apperrors.MissingRequired("username")
	}

	authUser, err := s.identity.CreateUser(ctx, email, password, username)
	if err != nil {
		return nil, apperrors.External("identity provider", err)
	}

	if err := s.userRepo.Create(ctx, authUser.UID, email, username); err != nil {
		return nil, apperrors.Database(err)
	}

	return authUser, nil
}

// Login resolves a user by email. Sign-in itself happens on the client
// against the identity provider; this backfills a missing profile document
// and stamps lastLogin for the activity analytics.
func (s *AccountService) Login(ctx context.Context, email string) (*model.AuthUser, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	if user == nil {
		authUser, err := s.identity.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, apperrors.NotFound("User")
		}

		username := authUser.DisplayName
		if username == "" {
			username = strings.SplitN(email, "@", 2)[0]
		}
		if err := s.userRepo.Create(ctx, authUser.UID, email, username); err != nil {
			return nil, apperrors.Database(err)
		}
		user = &model.User{ID: authUser.UID, Email: email, Username: username}
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, apperrors.Database(err)
	}

	return &model.AuthUser{
		UID:         user.ID,
		Email:       user.Email,
		DisplayName: user.Username,
	}, nil
}

func (s *AccountService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}
	return user, nil
}

// UpdateProfile accepts a whitelisted set of profile fields.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, params model.UpdateProfileParams) error {
	updates := map[string]any{}
	if params.Username != nil {
		if *params.Username == "" {
			return apperrors.InvalidInput("username", "must not be empty")
		}
		updates["username"] = *params.Username
	}
	if params.ProfilePicture != nil {
		updates["profile_picture"] = *params.ProfilePicture
	}
	if len(updates) == 0 {
		return apperrors.ValidationError("no updatable fields provided")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return apperrors.Database(err)
	}
	if user == nil {
		return apperrors.NotFound("User")
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, updates); err != nil {
		return apperrors.Database(err)
	}
	return nil
}

// Search finds users whose username starts with term, skipping the searcher
// and flagging existing friendships.
func (s *AccountService) Search(ctx context.Context, term, currentUserID string, limit int) ([]model.SearchResult, error) {
	if term == "" {
		return []model.SearchResult{}, nil
	}

	users, err := s.userRepo.SearchByUsername(ctx, term, limit)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	results := make([]model.SearchResult, 0, len(users))
	for _, user := range users {
		if user.ID == currentUserID {
			continue
		}
		isFriend := false
		for _, friendID := range user.Friends {
			if friendID == currentUserID {
				isFriend = true
				break
			}
		}
		results = append(results, model.SearchResult{User: user, IsFriend: isFriend})
	}
	return results, nil
}

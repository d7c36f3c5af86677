package database

import (
	"context"

	"firebase.google.com/go/v4/auth"

	"github.com/optima-app/api-server-go/internal/model"
)

// Identity adapts the Firebase Auth client to the shape the account service
// needs.
type Identity struct {
	client *auth.Client
}

func NewIdentity(client *auth.Client) *Identity {
	return &Identity{client: client}
}

func (i *Identity) CreateUser(ctx context.Context, email, password, displayName string) (*model.AuthUser, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	record, err := i.client.CreateUser(ctx, params)
	if err != nil {
		return nil, err
	}
	return authUserFromRecord(record), nil
}

func (i *Identity) GetUserByEmail(ctx context.Context, email string) (*model.AuthUser, error) {
	record, err := i.client.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return authUserFromRecord(record), nil
}

func authUserFromRecord(record *auth.UserRecord) *model.AuthUser {
	return &model.AuthUser{
		UID:         record.UID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
	}
}

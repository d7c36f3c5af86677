package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/optima-app/api-server-go/internal/model"
)

const adminsCollection = "admins"

type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	FindByID(ctx context.Context, id string) (*model.Admin, error)
	Create(ctx context.Context, params model.CreateAdminParams) (*model.Admin, error)
}

type adminRepo struct {
	fs *firestore.Client
}

func NewAdminRepository(fs *firestore.Client) AdminRepository {
	return &adminRepo{fs: fs}
}

func (r *adminRepo) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	iter := r.fs.Collection(adminsCollection).
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

	admin, err := decode[model.Admin](doc)
	if err != nil {
		return nil, err
	}
	admin.ID = doc.Ref.ID
	return admin, nil
}

func (r *adminRepo) FindByID(ctx context.Context, id string) (*model.Admin, error) {
	doc, err := r.fs.Collection(adminsCollection).Doc(id).Get(ctx)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	admin, err := decode[model.Admin](doc)
	if err != nil {
		return nil, err
	}
	admin.ID = doc.Ref.ID
	return admin, nil
}

// Create writes a new admin document with a store-assigned ID. The caller is
// responsible for the duplicate-email pre-check; two concurrent creators with
// the same email can still race through it.
func (r *adminRepo) Create(ctx context.Context, params model.CreateAdminParams) (*model.Admin, error) {
	ref := r.fs.Collection(adminsCollection).NewDoc()

	admin := model.Admin{
		ID:             ref.ID,
		Email:          params.Email,
		Name:           params.Name,
		PasswordDigest: params.PasswordDigest,
	}
	if _, err := ref.Set(ctx, admin); err != nil {
		return nil, err
	}

	doc, err := ref.Get(ctx)
	if err != nil {
		return nil, err
	}
	created, err := decode[model.Admin](doc)
	if err != nil {
		return nil, err
	}
	created.ID = ref.ID
	return created, nil
}

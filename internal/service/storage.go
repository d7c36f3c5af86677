package service

import (
	"context"
	"io"

	apperrors "github.com/optima-app/api-server-go/internal/errors"
	"github.com/optima-app/api-server-go/internal/repository"
)

// BlobStore is the slice of the managed bucket this backend uses: write an
// object, make it publicly readable, return its URL.
type BlobStore interface {
	UploadPublic(ctx context.Context, object, contentType string, r io.Reader) (string, error)
}

// StorageService uploads profile pictures and records their public URL on
// the user document.
type StorageService struct {
	blobs    BlobStore
	userRepo repository.UserRepository
}

func NewStorageService(blobs BlobStore, userRepo repository.UserRepository) *StorageService {
	return &StorageService{blobs: blobs, userRepo: userRepo}
}

func (s *StorageService) UploadProfilePicture(ctx context.Context, userID, contentType string, r io.Reader) (string, error) {
	if s.blobs == nil {
		return "", apperrors.Internal("file storage is not configured")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", apperrors.Database(err)
	}
	if user == nil {
		return "", apperrors.NotFound("User")
	}

	url, err := s.blobs.UploadPublic(ctx, "profile_pictures/"+userID, contentType, r)
	if err != nil {
		return "", apperrors.External("blob store", err)
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, map[string]any{
		"profile_picture": url,
	}); err != nil {
		return "", apperrors.Database(err)
	}

	return url, nil
}

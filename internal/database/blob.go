package database

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// Blobs adapts a Cloud Storage bucket to the shape the storage service needs.
// Uploaded objects are made publicly readable and addressed by their
// canonical storage URL.
type Blobs struct {
	bucket *storage.BucketHandle
	name   string
}

func NewBlobs(bucket *storage.BucketHandle, name string) *Blobs {
	return &Blobs{bucket: bucket, name: name}
}

func (b *Blobs) UploadPublic(ctx context.Context, object, contentType string, r io.Reader) (string, error) {
	obj := b.bucket.Object(object)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("write object %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize object %s: %w", object, err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("publish object %s: %w", object, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.name, object), nil
}

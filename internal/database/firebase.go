package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	storage "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Client bundles the managed-store handles the whole backend passes through
// to: Firestore documents, the Firebase Auth identity provider, and the blob
// bucket for uploads. Initialized once at startup and shared read-only.
type Client struct {
	Firestore *firestore.Client
	Auth      *auth.Client
	Bucket    *storage.BucketHandle
}

// Connect initializes the Firebase app from a service account credentials
// file. Bucket is nil when no storage bucket is configured; callers that
// upload must check.
func Connect(ctx context.Context, credentialsFile, storageBucket string) (*Client, error) {
	conf := &firebase.Config{}
	if storageBucket != "" {
		conf.StorageBucket = storageBucket
	}

	app, err := firebase.NewApp(ctx, conf, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("create auth client: %w", err)
	}

	client := &Client{
		Firestore: fs,
		Auth:      authClient,
	}

	if storageBucket != "" {
		storageClient, err := app.Storage(ctx)
		if err != nil {
			return nil, fmt.Errorf("create storage client: %w", err)
		}
		bucket, err := storageClient.DefaultBucket()
		if err != nil {
			return nil, fmt.Errorf("open storage bucket: %w", err)
		}
		client.Bucket = bucket
	}

	return client, nil
}

// Ping lists a single document from the admins collection to verify
// Firestore connectivity.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Firestore.Collection("admins").Limit(1).Documents(ctx).GetAll()
	return err
}

func (c *Client) Close() error {
	return c.Firestore.Close()
}

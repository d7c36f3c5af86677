package repository

import (
	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// IsNotFound reports whether a Firestore error means the document does not
// exist. Find* methods convert that to a nil result without error, so a
// missing document is not an error condition.
func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// decode unmarshals a snapshot into T. The document ID is not a field in
// most collections, so callers set it from the snapshot ref afterwards.
func decode[T any](doc *firestore.DocumentSnapshot) (*T, error) {
	var v T
	if err := doc.DataTo(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

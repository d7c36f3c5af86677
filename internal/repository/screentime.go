package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/optima-app/api-server-go/internal/model"
)

const screentimeCollection = "screentime"

type ScreentimeRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.ScreentimeRecord, error)
	ListAll(ctx context.Context) ([]model.ScreentimeRecord, error)
}

type screentimeRepo struct {
	fs *firestore.Client
}

func NewScreentimeRepository(fs *firestore.Client) ScreentimeRepository {
	return &screentimeRepo{fs: fs}
}

func (r *screentimeRepo) ListByUser(ctx context.Context, userID string) ([]model.ScreentimeRecord, error) {
	docs, err := r.fs.Collection(screentimeCollection).
		Where("userId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return decodeRecords(docs)
}

func (r *screentimeRepo) ListAll(ctx context.Context) ([]model.ScreentimeRecord, error) {
	docs, err := r.fs.Collection(screentimeCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return decodeRecords(docs)
}

func decodeRecords(docs []*firestore.DocumentSnapshot) ([]model.ScreentimeRecord, error) {
	records := make([]model.ScreentimeRecord, 0, len(docs))
	for _, doc := range docs {
		record, err := decode[model.ScreentimeRecord](doc)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

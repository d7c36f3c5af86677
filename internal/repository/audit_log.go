package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/optima-app/api-server-go/internal/model"
)

const adminLogsCollection = "admin_logs"

type AuditLogRepository interface {
	Create(ctx context.Context, entry model.AuditLogEntry) (string, error)
	List(ctx context.Context, limit int) ([]model.AuditLogEntry, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

type auditLogRepo struct {
	fs *firestore.Client
}

func NewAuditLogRepository(fs *firestore.Client) AuditLogRepository {
	return &auditLogRepo{fs: fs}
}

func (r *auditLogRepo) Create(ctx context.Context, entry model.AuditLogEntry) (string, error) {
	if entry.Details == nil {
		entry.Details = map[string]any{}
	}

	ref := r.fs.Collection(adminLogsCollection).NewDoc()
	if _, err := ref.Set(ctx, entry); err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (r *auditLogRepo) List(ctx context.Context, limit int) ([]model.AuditLogEntry, error) {
	docs, err := r.fs.Collection(adminLogsCollection).
		OrderBy("timestamp", firestore.Desc).
		Limit(limit).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	entries := make([]model.AuditLogEntry, 0, len(docs))
	for _, doc := range docs {
		entry, err := decode[model.AuditLogEntry](doc)
		if err != nil {
			return nil, err
		}
		entry.ID = doc.Ref.ID
		entries = append(entries, *entry)
	}
	return entries, nil
}

// DeleteOlderThan prunes entries past the retention window, one delete per
// document. Returns how many were removed.
func (r *auditLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	docs, err := r.fs.Collection(adminLogsCollection).
		Where("timestamp", "<", cutoff).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, doc := range docs {
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

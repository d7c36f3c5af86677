package audit

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/optima-app/api-server-go/internal/model"
	"github.com/optima-app/api-server-go/internal/repository"
)

// Recorder persists admin actions to the append-only admin_logs collection
// and mirrors them to the structured log. A persistence failure is logged
// and swallowed: an audit write must never fail the action it describes.
type Recorder struct {
	repo repository.AuditLogRepository
}

func NewRecorder(repo repository.AuditLogRepository) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) Record(ctx context.Context, adminID, action string, details map[string]any) {
	r.record(ctx, model.AuditLogEntry{
		AdminID: adminID,
		Action:  action,
		Details: details,
	})
}

// RecordFromRequest attaches the client origin address to the entry.
func (r *Recorder) RecordFromRequest(req *http.Request, adminID, action string, details map[string]any) {
	r.record(req.Context(), model.AuditLogEntry{
		AdminID:   adminID,
		Action:    action,
		Details:   details,
		IPAddress: clientIP(req),
	})
}

func (r *Recorder) record(ctx context.Context, entry model.AuditLogEntry) {
	logger := log.With().
		Str("audit", "admin").
		Str("action", entry.Action).
		Str("admin_id", entry.AdminID).
		Logger()
	if entry.IPAddress != "" {
		logger = logger.With().Str("ip", entry.IPAddress).Logger()
	}

	if _, err := r.repo.Create(ctx, entry); err != nil {
		logger.Error().Err(err).Msg("failed to persist audit entry")
		return
	}
	logger.Info().Fields(entry.Details).Msg("admin action")
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}

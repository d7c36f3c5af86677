package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/optima-app/api-server-go/internal/repository"
)

// RetentionJob prunes audit log entries older than the retention window on a
// fixed interval.
type RetentionJob struct {
	auditRepo repository.AuditLogRepository
	retention time.Duration
	interval  time.Duration
	done      chan struct{}
}

func NewRetentionJob(auditRepo repository.AuditLogRepository, retention, interval time.Duration) *RetentionJob {
	return &RetentionJob{
		auditRepo: auditRepo,
		retention: retention,
		interval:  interval,
		done:      make(chan struct{}),
	}
}

func (j *RetentionJob) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Dur("retention", j.retention).Msg("audit retention job started")
}

func (j *RetentionJob) Stop() {
	close(j.done)
	log.Info().Msg("audit retention job stopped")
}

func (j *RetentionJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.prune()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.prune()
		}
	}
}

func (j *RetentionJob) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-j.retention)
	count, err := j.auditRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("failed to prune audit logs")
	} else if count > 0 {
		log.Info().Int("count", count).Msg("pruned audit logs")
	}
}

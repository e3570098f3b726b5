package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushub/user-directory/internal/api/metrics"
	"github.com/campushub/user-directory/internal/core/domain"
	"github.com/campushub/user-directory/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) guarding the audit
// trail against duplicate delivery.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, userID, action string, ts time.Time) (bool, error)
	Mark(ctx context.Context, userID, action string, ts time.Time) error
}

type auditService struct {
	repo  ports.AuditRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, dedup DedupChecker, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and persists a single directory event.
func (s *auditService) Process(ctx context.Context, in ports.DirectoryEventInput) error {
	start := time.Now()

	isDup, err := s.dedup.IsDuplicate(ctx, in.UserID, in.Action, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", in.UserID).Msg("dedup check failed, processing anyway")
		metrics.AuditDedupTotal.WithLabelValues("error").Inc()
	} else if isDup {
		s.log.Debug().Str("user_id", in.UserID).Str("action", in.Action).Msg("duplicate event skipped")
		metrics.AuditDedupTotal.WithLabelValues("hit").Inc()
		return nil
	} else {
		metrics.AuditDedupTotal.WithLabelValues("miss").Inc()
	}

	// Mark before writing so a retry after a partial failure does not
	// double-insert.
	if markErr := s.dedup.Mark(ctx, in.UserID, in.Action, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("user_id", in.UserID).Msg("failed to set dedup key")
	}

	ev := &domain.DirectoryEvent{
		UserID:    in.UserID,
		Action:    domain.DirectoryAction(in.Action),
		Actor:     in.Actor,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.Insert(ctx, ev); err != nil {
		metrics.AuditErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("process audit event: %w", err)
	}

	metrics.AuditProcessedTotal.WithLabelValues(in.Action).Inc()
	metrics.AuditProcessingDuration.WithLabelValues(in.Action).Observe(time.Since(start).Seconds())

	s.log.Info().
		Str("user_id", in.UserID).
		Str("action", in.Action).
		Str("actor", in.Actor).
		Msg("audit event recorded")

	return nil
}

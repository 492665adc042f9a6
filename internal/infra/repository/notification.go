package repository

import (
	"context"
	"log/slog"
	"time"

	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/infra/db"
)

const insertNotificationJob = `INSERT INTO notification_jobs (kind, topic, payload, run_at) VALUES ($1, $2, $3, $4)`

type NotificationRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{
		db:     dbtx,
		logger: slog.Default(),
	}
}

// CreateJob queues an outbox row in the caller's transaction.
func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	if _, err := r.db.Exec(ctx, insertNotificationJob, kind, topic, payload, runAt); err != nil {
		return infra.ClassifyPgError(r.logger, "failed to enqueue notification", err)
	}
	return nil
}

package repository

import (
	"context"
	"time"

	"eleva-booking/internal/infra"
	"eleva-booking/internal/infra/db"
)

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

// CreateJob writes an outbox row in the caller's transaction; the
// delivery pipeline picks it up after commit, so a booking and its
// notification cannot diverge.
func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO notification_jobs (kind, topic, payload, run_at, created_at)
		VALUES ($1, $2, $3, $4, now())
	`, kind, topic, payload, runAt)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to create notification job", err)
	}
	return nil
}

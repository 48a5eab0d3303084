package repository

import (
	"context"
	"errors"

	"eleva-booking/internal/domain/meeting"
	"eleva-booking/internal/infra"
	"eleva-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

type MeetingRepository struct{}

func NewMeetingRepository() *MeetingRepository {
	return &MeetingRepository{}
}

// Create inserts a confirmed meeting. The partial unique index on
// (event_id, start_time) over confirmed rows is the authoritative
// double-booking guard; a violation surfaces as KindDuplicateKey and
// the caller decides whether the existing row is an idempotent match.
func (r *MeetingRepository) Create(ctx context.Context, tx db.DBTX, m *meeting.Meeting) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO meetings (
			id, event_id, expert_id,
			guest_name, guest_email, guest_timezone,
			start_time, end_time, status,
			payment_reference, payment_status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12)
		RETURNING id
	`,
		m.ID(), m.EventID(), m.ExpertID(),
		m.Guest().Name(), m.Guest().Email(), m.Guest().DisplayTimezone(),
		m.StartTime(), m.EndTime(), string(m.Status()),
		m.PaymentReference(), string(m.PaymentStatus()), m.CreatedAt(),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgErrCodeUniqueViolation:
				return uuid.Nil, infra.WrapRepoErr(infra.KindDuplicateKey, "meeting slot already taken", err)
			case pgErrCodeForeignKeyViolation:
				return uuid.Nil, infra.WrapRepoErr(infra.KindForeignKeyViolated, "meeting references missing row", err)
			}
		}
		return uuid.Nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to create meeting", err)
	}

	return id, nil
}

func (r *MeetingRepository) Cancel(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `
		UPDATE meetings
		SET status = 'canceled'
		WHERE id = $1 AND status = 'confirmed'
	`, id)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to cancel meeting", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "meeting not found or not confirmed", nil)
	}
	return nil
}

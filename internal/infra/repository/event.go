package repository

import (
	"context"
	"errors"

	"eleva-booking/internal/domain/event"
	"eleva-booking/internal/infra"
	"eleva-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type EventRepository struct{}

func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

func (r *EventRepository) Create(ctx context.Context, tx db.DBTX, e *event.Event) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO events (id, expert_id, slug, name, duration_min, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, e.ID(), e.ExpertID(), e.Slug(), e.Name(), e.DurationMinutes(), e.IsActive(), e.CreatedAt(), e.UpdatedAt()).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return uuid.Nil, infra.WrapRepoErr(infra.KindDuplicateKey, "event slug already in use", err)
		}
		return uuid.Nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to create event", err)
	}
	return id, nil
}

func (r *EventRepository) Update(ctx context.Context, tx db.DBTX, e *event.Event) error {
	tag, err := tx.Exec(ctx, `
		UPDATE events
		SET name = $2, duration_min = $3, active = $4, updated_at = $5
		WHERE id = $1
	`, e.ID(), e.Name(), e.DurationMinutes(), e.IsActive(), e.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to update event", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "event not found", nil)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, tx db.DBTX, eventID uuid.UUID) error {
	tag, err := tx.Exec(ctx, `
		DELETE FROM events
		WHERE id = $1
	`, eventID)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to delete event", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "event not found", nil)
	}
	return nil
}

func (r *EventRepository) HasMeetings(ctx context.Context, tx db.DBTX, eventID uuid.UUID) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM meetings WHERE event_id = $1)
	`, eventID).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to check event meetings", err)
	}
	return exists, nil
}

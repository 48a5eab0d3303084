package readstore

import (
	"context"
	"errors"
	"time"

	"eleva-booking/internal/domain/event"
	"eleva-booking/internal/infra"
	"eleva-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type EventReadStore struct{}

func NewEventReadStore() *EventReadStore {
	return &EventReadStore{}
}

func scanEvent(row pgx.Row) (*event.Event, error) {
	var (
		id, expertID         uuid.UUID
		slug, name           string
		durationMin          int
		active               bool
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &expertID, &slug, &name, &durationMin, &active, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "event not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to load event", err)
	}
	return event.ReconstructEvent(id, expertID, slug, name, durationMin, active, createdAt, updatedAt), nil
}

func (s *EventReadStore) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*event.Event, error) {
	return scanEvent(dbtx.QueryRow(ctx, `
		SELECT id, expert_id, slug, name, duration_min, active, created_at, updated_at
		FROM events
		WHERE id = $1
	`, id))
}

func (s *EventReadStore) FindBySlug(ctx context.Context, dbtx db.DBTX, expertID uuid.UUID, slug string) (*event.Event, error) {
	return scanEvent(dbtx.QueryRow(ctx, `
		SELECT id, expert_id, slug, name, duration_min, active, created_at, updated_at
		FROM events
		WHERE expert_id = $1 AND slug = $2
	`, expertID, slug))
}

func (s *EventReadStore) ListByExpert(ctx context.Context, dbtx db.DBTX, expertID uuid.UUID) ([]*event.Event, error) {
	rows, err := dbtx.Query(ctx, `
		SELECT id, expert_id, slug, name, duration_min, active, created_at, updated_at
		FROM events
		WHERE expert_id = $1
		ORDER BY created_at
	`, expertID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list events", err)
	}
	defer rows.Close()

	var result []*event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read events", err)
	}
	return result, nil
}

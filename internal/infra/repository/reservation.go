package repository

import (
	"context"
	"time"

	"eleva-booking/internal/infra"
	"eleva-booking/internal/infra/db"
	"eleva-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

// TryReserve claims the (event, start time) key in one statement. The
// primary key on (event_id, start_time) makes the claim atomic across
// application instances: the conditional upsert takes over expired
// holds and extends same-guest holds, while a live hold by another
// guest leaves the row untouched and returns nothing.
func (r *ReservationRepository) TryReserve(
	ctx context.Context,
	tx db.DBTX,
	eventID uuid.UUID,
	startTime time.Time,
	guestEmail string,
	expiresAt, now time.Time,
) (shared.ReserveOutcome, error) {
	tag, err := tx.Exec(ctx, `
		INSERT INTO slot_reservations (event_id, start_time, guest_email, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id, start_time) DO UPDATE
		SET guest_email = EXCLUDED.guest_email,
		    expires_at  = EXCLUDED.expires_at
		WHERE slot_reservations.expires_at <= $5
		   OR slot_reservations.guest_email = EXCLUDED.guest_email
	`, eventID, startTime, guestEmail, expiresAt, now)
	if err != nil {
		return "", infra.WrapRepoErr(infra.KindDBFailure, "failed to reserve slot", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ReserveOutcomeHeld, nil
	}
	return shared.ReserveOutcomeAcquired, nil
}

func (r *ReservationRepository) Release(ctx context.Context, tx db.DBTX, eventID uuid.UUID, startTime time.Time, guestEmail string) error {
	_, err := tx.Exec(ctx, `
		DELETE FROM slot_reservations
		WHERE event_id = $1 AND start_time = $2 AND guest_email = $3
	`, eventID, startTime, guestEmail)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to release reservation", err)
	}
	return nil
}

// DeleteExpired is the hygiene sweep run by the expiry worker. Expiry
// itself is lazy: every read and claim compares expires_at against the
// caller's "now", so a missed sweep never extends a hold.
func (r *ReservationRepository) DeleteExpired(ctx context.Context, tx db.DBTX, before time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, `
		DELETE FROM slot_reservations
		WHERE expires_at <= $1
	`, before)
	if err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to delete expired reservations", err)
	}
	return tag.RowsAffected(), nil
}

package readstore

import (
	"context"
	"errors"
	"time"

	"eleva-booking/internal/domain/meeting"
	"eleva-booking/internal/infra"
	"eleva-booking/internal/infra/db"
	"eleva-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MeetingReadStore struct{}

func NewMeetingReadStore() *MeetingReadStore {
	return &MeetingReadStore{}
}

const meetingColumns = `
	id, event_id, expert_id,
	guest_name, guest_email, guest_timezone,
	start_time, end_time, status,
	COALESCE(payment_reference, ''), payment_status, created_at
`

func scanMeeting(row pgx.Row) (*meeting.Meeting, error) {
	var (
		id, eventID, expertID                uuid.UUID
		guestName, guestEmail, guestTimezone string
		startTime, endTime, createdAt        time.Time
		status, paymentReference, payStatus  string
	)
	err := row.Scan(
		&id, &eventID, &expertID,
		&guestName, &guestEmail, &guestTimezone,
		&startTime, &endTime, &status,
		&paymentReference, &payStatus, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "meeting not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to load meeting", err)
	}

	guest, err := meeting.NewGuest(guestName, guestEmail, guestTimezone)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "corrupt meeting guest", err)
	}

	return meeting.ReconstructMeeting(
		id, eventID, expertID, guest,
		startTime.UTC(), endTime.UTC(),
		meeting.Status(status),
		paymentReference,
		meeting.PaymentStatus(payStatus),
		createdAt.UTC(),
	), nil
}

// notFoundAsNil turns a NOT_FOUND lookup into (nil, nil); the conflict
// resolver treats absence as "slot free", not as an error.
func notFoundAsNil(m *meeting.Meeting, err error) (*meeting.Meeting, error) {
	if err != nil && infra.IsKind(err, infra.KindNotFound) {
		return nil, nil
	}
	return m, err
}

func (s *MeetingReadStore) FindByPaymentReference(ctx context.Context, dbtx db.DBTX, paymentReference string) (*meeting.Meeting, error) {
	if paymentReference == "" {
		return nil, nil
	}
	return notFoundAsNil(scanMeeting(dbtx.QueryRow(ctx, `
		SELECT `+meetingColumns+`
		FROM meetings
		WHERE payment_reference = $1
	`, paymentReference)))
}

func (s *MeetingReadStore) FindByNaturalKey(ctx context.Context, dbtx db.DBTX, eventID uuid.UUID, startTime time.Time, guestEmail string) (*meeting.Meeting, error) {
	return notFoundAsNil(scanMeeting(dbtx.QueryRow(ctx, `
		SELECT `+meetingColumns+`
		FROM meetings
		WHERE event_id = $1 AND start_time = $2 AND guest_email = $3 AND status = 'confirmed'
	`, eventID, startTime, guestEmail)))
}

func (s *MeetingReadStore) FindConflicting(ctx context.Context, dbtx db.DBTX, eventID uuid.UUID, startTime time.Time, excludeGuestEmail string) (*meeting.Meeting, error) {
	return notFoundAsNil(scanMeeting(dbtx.QueryRow(ctx, `
		SELECT `+meetingColumns+`
		FROM meetings
		WHERE event_id = $1 AND start_time = $2 AND guest_email <> $3 AND status = 'confirmed'
	`, eventID, startTime, excludeGuestEmail)))
}

// BusyBetween returns the expert's confirmed meeting intervals inside
// [from, to), unbuffered; the validator applies schedule buffers.
func (s *MeetingReadStore) BusyBetween(ctx context.Context, dbtx db.DBTX, expertID uuid.UUID, from, to time.Time) ([]shared.BusyInterval, error) {
	rows, err := dbtx.Query(ctx, `
		SELECT start_time, end_time
		FROM meetings
		WHERE expert_id = $1
		  AND status = 'confirmed'
		  AND end_time > $2
		  AND start_time < $3
		ORDER BY start_time
	`, expertID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to load meeting intervals", err)
	}
	defer rows.Close()

	var result []shared.BusyInterval
	for rows.Next() {
		var start, end time.Time
		if err := rows.Scan(&start, &end); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan meeting interval", err)
		}
		result = append(result, shared.BusyInterval{Start: start.UTC(), End: end.UTC()})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read meeting intervals", err)
	}
	return result, nil
}

func (s *MeetingReadStore) ListUpcomingByExpert(ctx context.Context, dbtx db.DBTX, expertID uuid.UUID, from time.Time, limit int) ([]*meeting.Meeting, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := dbtx.Query(ctx, `
		SELECT `+meetingColumns+`
		FROM meetings
		WHERE expert_id = $1 AND status = 'confirmed' AND start_time >= $2
		ORDER BY start_time
		LIMIT $3
	`, expertID, from, limit)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list meetings", err)
	}
	defer rows.Close()

	var result []*meeting.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read meetings", err)
	}
	return result, nil
}

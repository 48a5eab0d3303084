package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"eleva-booking/internal/domain/event"
	"eleva-booking/internal/domain/meeting"
	"eleva-booking/internal/domain/schedule"
	"eleva-booking/internal/infra/db"
	"eleva-booking/internal/infra/readstore"
	"eleva-booking/internal/infra/repository"
	"eleva-booking/internal/pkg/errs"
	"eleva-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes;
// the meeting unique index carries the double-booking guarantee, not
// the isolation level.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	meetingRepo      shared.MeetingRepository
	reservationRepo  shared.ReservationRepository
	eventRepo        shared.EventRepository
	scheduleRepo     shared.ScheduleRepository
	notificationRepo shared.NotificationRepository
	commandReads     shared.CommandReads
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Meetings() shared.MeetingRepository {
	if t.meetingRepo == nil {
		t.meetingRepo = repository.NewMeetingRepository()
	}
	return t.meetingRepo
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository()
	}
	return t.reservationRepo
}

func (t *pgTx) Events() shared.EventRepository {
	if t.eventRepo == nil {
		t.eventRepo = repository.NewEventRepository()
	}
	return t.eventRepo
}

func (t *pgTx) Schedules() shared.ScheduleRepository {
	if t.scheduleRepo == nil {
		t.scheduleRepo = repository.NewScheduleRepository()
	}
	return t.scheduleRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository()
	}
	return t.notificationRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx}
	}
	return t.commandReads
}

type commandReads struct {
	dbtx db.DBTX

	// Lazy-initialized readstores
	scheduleStore *readstore.ScheduleReadStore
	eventStore    *readstore.EventReadStore
	meetingStore  *readstore.MeetingReadStore
}

func (r *commandReads) schedules() *readstore.ScheduleReadStore {
	if r.scheduleStore == nil {
		r.scheduleStore = readstore.NewScheduleReadStore()
	}
	return r.scheduleStore
}

func (r *commandReads) events() *readstore.EventReadStore {
	if r.eventStore == nil {
		r.eventStore = readstore.NewEventReadStore()
	}
	return r.eventStore
}

func (r *commandReads) meetings() *readstore.MeetingReadStore {
	if r.meetingStore == nil {
		r.meetingStore = readstore.NewMeetingReadStore()
	}
	return r.meetingStore
}

func (r *commandReads) ScheduleByExpert(ctx context.Context, expertID uuid.UUID) (*schedule.Schedule, error) {
	return r.schedules().FindByExpert(ctx, r.dbtx, expertID)
}

func (r *commandReads) BlockedDatesByExpert(ctx context.Context, expertID uuid.UUID) ([]*schedule.BlockedDate, error) {
	return r.schedules().BlockedDatesByExpert(ctx, r.dbtx, expertID)
}

func (r *commandReads) EventByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	return r.events().FindByID(ctx, r.dbtx, id)
}

func (r *commandReads) EventBySlug(ctx context.Context, expertID uuid.UUID, slug string) (*event.Event, error) {
	return r.events().FindBySlug(ctx, r.dbtx, expertID, slug)
}

func (r *commandReads) MeetingBusyBetween(ctx context.Context, expertID uuid.UUID, from, to time.Time) ([]shared.BusyInterval, error) {
	return r.meetings().BusyBetween(ctx, r.dbtx, expertID, from, to)
}

func (r *commandReads) MeetingByPaymentReference(ctx context.Context, paymentReference string) (*meeting.Meeting, error) {
	return r.meetings().FindByPaymentReference(ctx, r.dbtx, paymentReference)
}

func (r *commandReads) MeetingByNaturalKey(ctx context.Context, eventID uuid.UUID, startTime time.Time, guestEmail string) (*meeting.Meeting, error) {
	return r.meetings().FindByNaturalKey(ctx, r.dbtx, eventID, startTime, guestEmail)
}

func (r *commandReads) ConflictingMeeting(ctx context.Context, eventID uuid.UUID, startTime time.Time, excludeGuestEmail string) (*meeting.Meeting, error) {
	return r.meetings().FindConflicting(ctx, r.dbtx, eventID, startTime, excludeGuestEmail)
}

func (r *commandReads) EventsByExpert(ctx context.Context, expertID uuid.UUID) ([]*event.Event, error) {
	return r.events().ListByExpert(ctx, r.dbtx, expertID)
}

func (r *commandReads) UpcomingMeetingsByExpert(ctx context.Context, expertID uuid.UUID, from time.Time, limit int) ([]*meeting.Meeting, error) {
	return r.meetings().ListUpcomingByExpert(ctx, r.dbtx, expertID, from, limit)
}

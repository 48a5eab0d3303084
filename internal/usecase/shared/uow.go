package shared

import (
	"context"
	"time"

	"eleva-booking/internal/domain/event"
	"eleva-booking/internal/domain/meeting"
	"eleva-booking/internal/domain/schedule"
	"eleva-booking/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Meetings() MeetingRepository
	Reservations() ReservationRepository
	Events() EventRepository
	Schedules() ScheduleRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ScheduleByExpert(ctx context.Context, expertID uuid.UUID) (*schedule.Schedule, error)
	BlockedDatesByExpert(ctx context.Context, expertID uuid.UUID) ([]*schedule.BlockedDate, error)
	EventByID(ctx context.Context, id uuid.UUID) (*event.Event, error)
	EventBySlug(ctx context.Context, expertID uuid.UUID, slug string) (*event.Event, error)
	// MeetingBusyBetween returns confirmed meeting intervals for the
	// expert inside [from, to), unbuffered.
	MeetingBusyBetween(ctx context.Context, expertID uuid.UUID, from, to time.Time) ([]BusyInterval, error)
	MeetingByPaymentReference(ctx context.Context, paymentReference string) (*meeting.Meeting, error)
	MeetingByNaturalKey(ctx context.Context, eventID uuid.UUID, startTime time.Time, guestEmail string) (*meeting.Meeting, error)
	// ConflictingMeeting finds a confirmed meeting on the key held by a
	// different guest, nil when the slot is free.
	ConflictingMeeting(ctx context.Context, eventID uuid.UUID, startTime time.Time, excludeGuestEmail string) (*meeting.Meeting, error)
	EventsByExpert(ctx context.Context, expertID uuid.UUID) ([]*event.Event, error)
	UpcomingMeetingsByExpert(ctx context.Context, expertID uuid.UUID, from time.Time, limit int) ([]*meeting.Meeting, error)
}

type BusyInterval struct {
	Start time.Time
	End   time.Time
}

type MeetingRepository interface {
	// Create fails with KindDuplicateKey when a confirmed meeting
	// already occupies (event, start time).
	Create(ctx context.Context, tx db.DBTX, m *meeting.Meeting) (uuid.UUID, error)
	Cancel(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type ReserveOutcome string

const (
	ReserveOutcomeAcquired ReserveOutcome = "acquired"
	ReserveOutcomeHeld     ReserveOutcome = "held_by_other"
)

type ReservationRepository interface {
	// TryReserve atomically claims (event, start time) for the guest.
	// A live hold by the same guest is extended; an expired hold is
	// taken over; a live hold by another guest yields
	// ReserveOutcomeHeld.
	TryReserve(ctx context.Context, tx db.DBTX, eventID uuid.UUID, startTime time.Time, guestEmail string, expiresAt, now time.Time) (ReserveOutcome, error)
	Release(ctx context.Context, tx db.DBTX, eventID uuid.UUID, startTime time.Time, guestEmail string) error
	DeleteExpired(ctx context.Context, tx db.DBTX, before time.Time) (int64, error)
}

type EventRepository interface {
	Create(ctx context.Context, tx db.DBTX, e *event.Event) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, e *event.Event) error
	// Delete is only legal for events without meetings; callers must
	// check HasMeetings first and deactivate instead.
	Delete(ctx context.Context, tx db.DBTX, eventID uuid.UUID) error
	HasMeetings(ctx context.Context, tx db.DBTX, eventID uuid.UUID) (bool, error)
}

type ScheduleRepository interface {
	Upsert(ctx context.Context, tx db.DBTX, s *schedule.Schedule) error
	AddBlockedDate(ctx context.Context, tx db.DBTX, b *schedule.BlockedDate) error
	RemoveBlockedDate(ctx context.Context, tx db.DBTX, expertID, blockedDateID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

package meeting

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStart    = errors.New("meeting start must be a UTC instant")
	ErrInvalidDuration = errors.New("meeting duration must be positive")
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
)

// Meeting is one confirmed booking. End time is always derived from
// start + duration; it is never independently settable.
type Meeting struct {
	id               uuid.UUID
	eventID          uuid.UUID
	expertID         uuid.UUID
	guest            Guest
	startTime        time.Time
	endTime          time.Time
	status           Status
	paymentReference string
	paymentStatus    PaymentStatus
	createdAt        time.Time
}

func NewMeeting(
	eventID, expertID uuid.UUID,
	guest Guest,
	startTime time.Time,
	duration time.Duration,
	paymentReference string,
	now time.Time,
) (*Meeting, error) {
	if startTime.IsZero() || startTime.Location() != time.UTC {
		return nil, ErrInvalidStart
	}
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	paymentStatus := PaymentStatusNone
	if paymentReference != "" {
		paymentStatus = PaymentStatusSucceeded
	}

	return &Meeting{
		id:               uuid.New(),
		eventID:          eventID,
		expertID:         expertID,
		guest:            guest,
		startTime:        startTime,
		endTime:          startTime.Add(duration),
		status:           StatusConfirmed,
		paymentReference: paymentReference,
		paymentStatus:    paymentStatus,
		createdAt:        now,
	}, nil
}

func ReconstructMeeting(
	id, eventID, expertID uuid.UUID,
	guest Guest,
	startTime, endTime time.Time,
	status Status,
	paymentReference string,
	paymentStatus PaymentStatus,
	createdAt time.Time,
) *Meeting {
	return &Meeting{
		id:               id,
		eventID:          eventID,
		expertID:         expertID,
		guest:            guest,
		startTime:        startTime,
		endTime:          endTime,
		status:           status,
		paymentReference: paymentReference,
		paymentStatus:    paymentStatus,
		createdAt:        createdAt,
	}
}

func (m *Meeting) ID() uuid.UUID            { return m.id }
func (m *Meeting) EventID() uuid.UUID       { return m.eventID }
func (m *Meeting) ExpertID() uuid.UUID      { return m.expertID }
func (m *Meeting) Guest() Guest             { return m.guest }
func (m *Meeting) StartTime() time.Time     { return m.startTime }
func (m *Meeting) EndTime() time.Time       { return m.endTime }
func (m *Meeting) Status() Status           { return m.status }
func (m *Meeting) PaymentReference() string { return m.paymentReference }
func (m *Meeting) PaymentStatus() PaymentStatus {
	return m.paymentStatus
}
func (m *Meeting) CreatedAt() time.Time { return m.createdAt }

func (m *Meeting) IsActive() bool { return m.status == StatusConfirmed }

func (m *Meeting) Cancel() {
	m.status = StatusCanceled
}

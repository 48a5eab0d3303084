package schedule

import (
	"errors"
	"time"

	"eleva-booking/internal/pkg/tz"

	"github.com/google/uuid"
)

var (
	ErrNegativeBuffer    = errors.New("buffers must be non-negative")
	ErrNegativeNotice    = errors.New("minimum notice must be non-negative")
	ErrInvalidInterval   = errors.New("time slot interval must be positive")
	ErrInvalidWindowDays = errors.New("booking window days must be positive")
)

// Schedule is an expert's weekly availability plus the booking limits
// applied to every candidate slot. The timezone is authoritative for
// all validation; guest timezones are display-only.
type Schedule struct {
	expertID          uuid.UUID
	location          *time.Location
	weekly            WeeklyWindows
	beforeEventBuffer time.Duration
	afterEventBuffer  time.Duration
	minimumNotice     time.Duration
	timeSlotInterval  time.Duration
	bookingWindowDays int
}

func NewSchedule(
	expertID uuid.UUID,
	timezone string,
	weekly WeeklyWindows,
	beforeBufferMin, afterBufferMin, minimumNoticeMin, intervalMin, bookingWindowDays int,
) (*Schedule, error) {
	loc, err := tz.Load(timezone)
	if err != nil {
		return nil, err
	}
	if beforeBufferMin < 0 || afterBufferMin < 0 {
		return nil, ErrNegativeBuffer
	}
	if minimumNoticeMin < 0 {
		return nil, ErrNegativeNotice
	}
	if intervalMin <= 0 {
		return nil, ErrInvalidInterval
	}
	if bookingWindowDays <= 0 {
		return nil, ErrInvalidWindowDays
	}

	return &Schedule{
		expertID:          expertID,
		location:          loc,
		weekly:            weekly,
		beforeEventBuffer: time.Duration(beforeBufferMin) * time.Minute,
		afterEventBuffer:  time.Duration(afterBufferMin) * time.Minute,
		minimumNotice:     time.Duration(minimumNoticeMin) * time.Minute,
		timeSlotInterval:  time.Duration(intervalMin) * time.Minute,
		bookingWindowDays: bookingWindowDays,
	}, nil
}

func (s *Schedule) ExpertID() uuid.UUID              { return s.expertID }
func (s *Schedule) Location() *time.Location         { return s.location }
func (s *Schedule) Timezone() string                 { return s.location.String() }
func (s *Schedule) Weekly() WeeklyWindows            { return s.weekly }
func (s *Schedule) BeforeEventBuffer() time.Duration { return s.beforeEventBuffer }
func (s *Schedule) AfterEventBuffer() time.Duration  { return s.afterEventBuffer }
func (s *Schedule) MinimumNotice() time.Duration     { return s.minimumNotice }
func (s *Schedule) TimeSlotInterval() time.Duration  { return s.timeSlotInterval }
func (s *Schedule) BookingWindowDays() int           { return s.bookingWindowDays }

// Horizon is the last instant a booking may start, measured from now.
func (s *Schedule) Horizon(now time.Time) time.Time {
	return now.AddDate(0, 0, s.bookingWindowDays)
}

package errs

import "errors"

// Domain-specific sentinel errors for the booking usecase layers
var (
	// Schedule errors
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrInvalidSchedule  = errors.New("invalid schedule")

	// Event errors
	ErrEventNotFoundOrInactive = errors.New("event not found or inactive")
	ErrEventHasMeetings        = errors.New("event has existing meetings")

	// Slot errors
	ErrInvalidTimeSlot = errors.New("invalid time slot")

	// Booking conflict errors
	ErrSlotTemporarilyReserved = errors.New("slot temporarily reserved")
	ErrSlotAlreadyBooked       = errors.New("slot already booked")

	// Meeting errors
	ErrMeetingNotFound = errors.New("meeting not found")

	// Upstream errors
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrCalendarDisabled marks the no-op calendar provider; callers
	// degrade without logging an upstream failure.
	ErrCalendarDisabled = errors.New("calendar provider disabled")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

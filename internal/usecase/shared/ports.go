package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CalendarProvider exposes busy intervals from the expert's external
// calendars (synced by a separate service). Implementations must return
// an error rather than an empty set when the upstream cannot be
// reached; callers decide whether to degrade.
type CalendarProvider interface {
	BusyIntervals(ctx context.Context, expertID uuid.UUID, from, to time.Time) ([]BusyInterval, error)
}

// SlotLocker bounds concurrent confirm attempts on one slot. A failed
// acquire (ok=false) means another request is mid-confirm; an error
// means the lock backend is unavailable and the caller should proceed,
// relying on the database uniqueness guard.
type SlotLocker interface {
	Acquire(ctx context.Context, eventID uuid.UUID, startTime time.Time) (release func(), ok bool, err error)
}

package schedule

import (
	"time"

	"eleva-booking/internal/pkg/tz"

	"github.com/google/uuid"
)

// BlockedDate marks one local calendar day as unbookable. The date is
// interpreted in the timezone it was created with, never reinterpreted
// in UTC: "2025-12-25" blocked in Europe/Lisbon covers a different
// absolute window than the same string blocked in UTC.
type BlockedDate struct {
	id       uuid.UUID
	expertID uuid.UUID
	date     string
	location *time.Location
	reason   string
}

func NewBlockedDate(expertID uuid.UUID, date, timezone, reason string) (*BlockedDate, error) {
	if _, _, _, err := tz.ParseDate(date); err != nil {
		return nil, err
	}
	loc, err := tz.Load(timezone)
	if err != nil {
		return nil, err
	}
	return &BlockedDate{
		id:       uuid.New(),
		expertID: expertID,
		date:     date,
		location: loc,
		reason:   reason,
	}, nil
}

func ReconstructBlockedDate(id, expertID uuid.UUID, date string, loc *time.Location, reason string) *BlockedDate {
	return &BlockedDate{
		id:       id,
		expertID: expertID,
		date:     date,
		location: loc,
		reason:   reason,
	}
}

func (b *BlockedDate) ID() uuid.UUID       { return b.id }
func (b *BlockedDate) ExpertID() uuid.UUID { return b.expertID }
func (b *BlockedDate) Date() string        { return b.date }
func (b *BlockedDate) Timezone() string    { return b.location.String() }
func (b *BlockedDate) Reason() string      { return b.reason }

// Covers reports whether the instant falls on the blocked local day.
func (b *BlockedDate) Covers(instant time.Time) bool {
	return tz.DateOf(instant, b.location) == b.date
}

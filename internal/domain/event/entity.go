package event

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDuration = errors.New("event duration must be positive")
	ErrInvalidSlug     = errors.New("invalid event slug")
	ErrInactive        = errors.New("event is inactive")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Event is a bookable offering owned by one expert. Events with
// existing meetings are deactivated rather than deleted.
type Event struct {
	id        uuid.UUID
	expertID  uuid.UUID
	slug      string
	name      string
	duration  time.Duration
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewEvent(expertID uuid.UUID, slug, name string, durationMin int, now time.Time) (*Event, error) {
	if durationMin <= 0 {
		return nil, ErrInvalidDuration
	}
	if !slugPattern.MatchString(slug) {
		return nil, ErrInvalidSlug
	}
	return &Event{
		id:        uuid.New(),
		expertID:  expertID,
		slug:      slug,
		name:      name,
		duration:  time.Duration(durationMin) * time.Minute,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructEvent(id, expertID uuid.UUID, slug, name string, durationMin int, active bool, createdAt, updatedAt time.Time) *Event {
	return &Event{
		id:        id,
		expertID:  expertID,
		slug:      slug,
		name:      name,
		duration:  time.Duration(durationMin) * time.Minute,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (e *Event) ID() uuid.UUID           { return e.id }
func (e *Event) ExpertID() uuid.UUID     { return e.expertID }
func (e *Event) Slug() string            { return e.slug }
func (e *Event) Name() string            { return e.name }
func (e *Event) Duration() time.Duration { return e.duration }
func (e *Event) DurationMinutes() int    { return int(e.duration / time.Minute) }
func (e *Event) IsActive() bool          { return e.active }
func (e *Event) CreatedAt() time.Time    { return e.createdAt }
func (e *Event) UpdatedAt() time.Time    { return e.updatedAt }

func (e *Event) Deactivate(now time.Time) {
	e.active = false
	e.updatedAt = now
}

func (e *Event) Activate(now time.Time) {
	e.active = true
	e.updatedAt = now
}

func (e *Event) Rename(name string, now time.Time) {
	e.name = name
	e.updatedAt = now
}

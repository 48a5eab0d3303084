//go:build unit

package commands_test

import (
	"context"
	"time"

	"eleva-booking/internal/domain/event"
	"eleva-booking/internal/domain/meeting"
	"eleva-booking/internal/domain/schedule"
	"eleva-booking/internal/infra"
	"eleva-booking/internal/infra/db"
	"eleva-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory doubles for the unit-of-work ports. TryReserve and Create
// mirror the SQL semantics (conditional upsert, partial unique index)
// so conflict paths behave the way production does.

type resKey struct {
	eventID uuid.UUID
	startAt int64
}

type resEntry struct {
	guestEmail string
	expiresAt  time.Time
}

type notificationJob struct {
	kind    string
	topic   string
	payload []byte
}

type fakeState struct {
	events       map[uuid.UUID]*event.Event
	schedules    map[uuid.UUID]*schedule.Schedule
	blocked      map[uuid.UUID][]*schedule.BlockedDate
	meetings     []*meeting.Meeting
	reservations map[resKey]resEntry
	jobs         []notificationJob

	// meetingCreateHook runs once before the next Create to simulate a
	// concurrent writer sneaking in between check and insert.
	meetingCreateHook func(s *fakeState)
}

func newFakeState() *fakeState {
	return &fakeState{
		events:       make(map[uuid.UUID]*event.Event),
		schedules:    make(map[uuid.UUID]*schedule.Schedule),
		blocked:      make(map[uuid.UUID][]*schedule.BlockedDate),
		reservations: make(map[resKey]resEntry),
	}
}

func (s *fakeState) confirmedAt(eventID uuid.UUID, start time.Time) *meeting.Meeting {
	for _, m := range s.meetings {
		if m.EventID() == eventID && m.StartTime().Equal(start) && m.IsActive() {
			return m
		}
	}
	return nil
}

type fakeUoW struct {
	state *fakeState
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{state: u.state})
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{state: u.state}
}

type fakeTx struct {
	state *fakeState
}

func (t *fakeTx) DB() db.DBTX                     { return nil }
func (t *fakeTx) Reads() shared.CommandReads      { return &fakeReads{state: t.state} }
func (t *fakeTx) Meetings() shared.MeetingRepository {
	return &fakeMeetingRepo{state: t.state}
}
func (t *fakeTx) Reservations() shared.ReservationRepository {
	return &fakeReservationRepo{state: t.state}
}
func (t *fakeTx) Events() shared.EventRepository {
	return &fakeEventRepo{state: t.state}
}
func (t *fakeTx) Schedules() shared.ScheduleRepository {
	return &fakeScheduleRepo{state: t.state}
}
func (t *fakeTx) Notifications() shared.NotificationRepository {
	return &fakeNotificationRepo{state: t.state}
}

type fakeReads struct {
	state *fakeState
}

func (r *fakeReads) ScheduleByExpert(_ context.Context, expertID uuid.UUID) (*schedule.Schedule, error) {
	sched, ok := r.state.schedules[expertID]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "schedule not found", nil)
	}
	return sched, nil
}

func (r *fakeReads) BlockedDatesByExpert(_ context.Context, expertID uuid.UUID) ([]*schedule.BlockedDate, error) {
	return r.state.blocked[expertID], nil
}

func (r *fakeReads) EventByID(_ context.Context, id uuid.UUID) (*event.Event, error) {
	ev, ok := r.state.events[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "event not found", nil)
	}
	return ev, nil
}

func (r *fakeReads) EventBySlug(_ context.Context, expertID uuid.UUID, slug string) (*event.Event, error) {
	for _, ev := range r.state.events {
		if ev.ExpertID() == expertID && ev.Slug() == slug {
			return ev, nil
		}
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "event not found", nil)
}

func (r *fakeReads) MeetingBusyBetween(_ context.Context, expertID uuid.UUID, from, to time.Time) ([]shared.BusyInterval, error) {
	var busy []shared.BusyInterval
	for _, m := range r.state.meetings {
		if m.ExpertID() != expertID || !m.IsActive() {
			continue
		}
		if m.EndTime().After(from) && m.StartTime().Before(to) {
			busy = append(busy, shared.BusyInterval{Start: m.StartTime(), End: m.EndTime()})
		}
	}
	return busy, nil
}

func (r *fakeReads) MeetingByPaymentReference(_ context.Context, paymentReference string) (*meeting.Meeting, error) {
	if paymentReference == "" {
		return nil, nil
	}
	for _, m := range r.state.meetings {
		if m.PaymentReference() == paymentReference {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeReads) MeetingByNaturalKey(_ context.Context, eventID uuid.UUID, startTime time.Time, guestEmail string) (*meeting.Meeting, error) {
	m := r.state.confirmedAt(eventID, startTime)
	if m == nil || m.Guest().Email() != guestEmail {
		return nil, nil
	}
	return m, nil
}

func (r *fakeReads) ConflictingMeeting(_ context.Context, eventID uuid.UUID, startTime time.Time, excludeGuestEmail string) (*meeting.Meeting, error) {
	m := r.state.confirmedAt(eventID, startTime)
	if m == nil || m.Guest().Email() == excludeGuestEmail {
		return nil, nil
	}
	return m, nil
}

func (r *fakeReads) EventsByExpert(_ context.Context, expertID uuid.UUID) ([]*event.Event, error) {
	var result []*event.Event
	for _, ev := range r.state.events {
		if ev.ExpertID() == expertID {
			result = append(result, ev)
		}
	}
	return result, nil
}

func (r *fakeReads) UpcomingMeetingsByExpert(_ context.Context, expertID uuid.UUID, from time.Time, _ int) ([]*meeting.Meeting, error) {
	var result []*meeting.Meeting
	for _, m := range r.state.meetings {
		if m.ExpertID() == expertID && m.IsActive() && !m.StartTime().Before(from) {
			result = append(result, m)
		}
	}
	return result, nil
}

type fakeMeetingRepo struct {
	state *fakeState
}

func (r *fakeMeetingRepo) Create(_ context.Context, _ db.DBTX, m *meeting.Meeting) (uuid.UUID, error) {
	if hook := r.state.meetingCreateHook; hook != nil {
		r.state.meetingCreateHook = nil
		hook(r.state)
	}
	if existing := r.state.confirmedAt(m.EventID(), m.StartTime()); existing != nil {
		return uuid.Nil, infra.WrapRepoErr(infra.KindDuplicateKey, "meeting slot already taken", nil)
	}
	r.state.meetings = append(r.state.meetings, m)
	return m.ID(), nil
}

func (r *fakeMeetingRepo) Cancel(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	for _, m := range r.state.meetings {
		if m.ID() == id && m.IsActive() {
			m.Cancel()
			return nil
		}
	}
	return infra.WrapRepoErr(infra.KindNotFound, "meeting not found or not confirmed", nil)
}

type fakeReservationRepo struct {
	state *fakeState
}

func (r *fakeReservationRepo) TryReserve(_ context.Context, _ db.DBTX, eventID uuid.UUID, startTime time.Time, guestEmail string, expiresAt, now time.Time) (shared.ReserveOutcome, error) {
	key := resKey{eventID: eventID, startAt: startTime.Unix()}
	entry, exists := r.state.reservations[key]
	if exists && entry.expiresAt.After(now) && entry.guestEmail != guestEmail {
		return shared.ReserveOutcomeHeld, nil
	}
	r.state.reservations[key] = resEntry{guestEmail: guestEmail, expiresAt: expiresAt}
	return shared.ReserveOutcomeAcquired, nil
}

func (r *fakeReservationRepo) Release(_ context.Context, _ db.DBTX, eventID uuid.UUID, startTime time.Time, guestEmail string) error {
	key := resKey{eventID: eventID, startAt: startTime.Unix()}
	if entry, ok := r.state.reservations[key]; ok && entry.guestEmail == guestEmail {
		delete(r.state.reservations, key)
	}
	return nil
}

func (r *fakeReservationRepo) DeleteExpired(_ context.Context, _ db.DBTX, before time.Time) (int64, error) {
	var deleted int64
	for key, entry := range r.state.reservations {
		if !entry.expiresAt.After(before) {
			delete(r.state.reservations, key)
			deleted++
		}
	}
	return deleted, nil
}

type fakeEventRepo struct {
	state *fakeState
}

func (r *fakeEventRepo) Create(_ context.Context, _ db.DBTX, e *event.Event) (uuid.UUID, error) {
	for _, existing := range r.state.events {
		if existing.ExpertID() == e.ExpertID() && existing.Slug() == e.Slug() {
			return uuid.Nil, infra.WrapRepoErr(infra.KindDuplicateKey, "event slug already in use", nil)
		}
	}
	r.state.events[e.ID()] = e
	return e.ID(), nil
}

func (r *fakeEventRepo) Update(_ context.Context, _ db.DBTX, e *event.Event) error {
	if _, ok := r.state.events[e.ID()]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "event not found", nil)
	}
	r.state.events[e.ID()] = e
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, _ db.DBTX, eventID uuid.UUID) error {
	if _, ok := r.state.events[eventID]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "event not found", nil)
	}
	delete(r.state.events, eventID)
	return nil
}

func (r *fakeEventRepo) HasMeetings(_ context.Context, _ db.DBTX, eventID uuid.UUID) (bool, error) {
	for _, m := range r.state.meetings {
		if m.EventID() == eventID {
			return true, nil
		}
	}
	return false, nil
}

type fakeScheduleRepo struct {
	state *fakeState
}

func (r *fakeScheduleRepo) Upsert(_ context.Context, _ db.DBTX, s *schedule.Schedule) error {
	r.state.schedules[s.ExpertID()] = s
	return nil
}

func (r *fakeScheduleRepo) AddBlockedDate(_ context.Context, _ db.DBTX, b *schedule.BlockedDate) error {
	for _, existing := range r.state.blocked[b.ExpertID()] {
		if existing.Date() == b.Date() {
			return infra.WrapRepoErr(infra.KindDuplicateKey, "date already blocked", nil)
		}
	}
	r.state.blocked[b.ExpertID()] = append(r.state.blocked[b.ExpertID()], b)
	return nil
}

func (r *fakeScheduleRepo) RemoveBlockedDate(_ context.Context, _ db.DBTX, expertID, blockedDateID uuid.UUID) error {
	blocked := r.state.blocked[expertID]
	for i, b := range blocked {
		if b.ID() == blockedDateID {
			r.state.blocked[expertID] = append(blocked[:i], blocked[i+1:]...)
			return nil
		}
	}
	return infra.WrapRepoErr(infra.KindNotFound, "blocked date not found", nil)
}

type fakeNotificationRepo struct {
	state *fakeState
}

func (r *fakeNotificationRepo) CreateJob(_ context.Context, _ db.DBTX, kind, topic string, payload []byte, _ time.Time) error {
	r.state.jobs = append(r.state.jobs, notificationJob{kind: kind, topic: topic, payload: payload})
	return nil
}

type fakeCalendar struct {
	intervals []shared.BusyInterval
	err       error
	calls     int
}

func (c *fakeCalendar) BusyIntervals(context.Context, uuid.UUID, time.Time, time.Time) ([]shared.BusyInterval, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.intervals, nil
}

type fakeLocker struct {
	contended bool
	err       error
	acquired  int
	released  int
}

func (l *fakeLocker) Acquire(context.Context, uuid.UUID, time.Time) (func(), bool, error) {
	if l.err != nil {
		return nil, false, l.err
	}
	if l.contended {
		return nil, false, nil
	}
	l.acquired++
	return func() { l.released++ }, true, nil
}

//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"eleva-booking/internal/domain/event"
	"eleva-booking/internal/domain/meeting"
	"eleva-booking/internal/pkg/clock"
	"eleva-booking/internal/pkg/errs"
	"eleva-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type EventUseCaseTestSuite struct {
	suite.Suite

	state    *fakeState
	clock    *clock.MockClock
	uc       commands.EventCommands
	expertID uuid.UUID
	now      time.Time
}

func TestEventUseCaseSuite(t *testing.T) {
	suite.Run(t, new(EventUseCaseTestSuite))
}

func (s *EventUseCaseTestSuite) SetupTest() {
	s.now = time.Date(2025, time.June, 2, 13, 0, 0, 0, time.UTC)
	s.expertID = uuid.New()
	s.state = newFakeState()
	s.clock = clock.NewMockClock(s.now)
	s.uc = commands.NewEventCommands(&fakeUoW{state: s.state}, s.clock)
}

func (s *EventUseCaseTestSuite) seedEvent(slug string) *event.Event {
	ev, err := event.NewEvent(s.expertID, slug, "Intro Call", 60, s.now)
	s.Require().NoError(err)
	s.state.events[ev.ID()] = ev
	return ev
}

func (s *EventUseCaseTestSuite) TestCreateEvent() {
	id, err := s.uc.CreateEvent(context.Background(), commands.CreateEventInput{
		ExpertID:    s.expertID,
		Slug:        "intro-call",
		Name:        "Intro Call",
		DurationMin: 60,
	})

	s.Require().NoError(err)
	s.Require().Contains(s.state.events, id)
	s.Equal("intro-call", s.state.events[id].Slug())
	s.True(s.state.events[id].IsActive())
}

func (s *EventUseCaseTestSuite) TestCreateEvent_DuplicateSlug() {
	s.seedEvent("intro-call")

	_, err := s.uc.CreateEvent(context.Background(), commands.CreateEventInput{
		ExpertID:    s.expertID,
		Slug:        "intro-call",
		Name:        "Another",
		DurationMin: 30,
	})

	s.Require().ErrorIs(err, errs.ErrDomainValidation)
}

func (s *EventUseCaseTestSuite) TestCreateEvent_InvalidDuration() {
	_, err := s.uc.CreateEvent(context.Background(), commands.CreateEventInput{
		ExpertID:    s.expertID,
		Slug:        "intro-call",
		Name:        "Intro Call",
		DurationMin: 0,
	})

	s.Require().ErrorIs(err, errs.ErrDomainValidation)
}

func (s *EventUseCaseTestSuite) TestUpdateEvent_RenameAndDeactivate() {
	ev := s.seedEvent("intro-call")

	inactive := false
	err := s.uc.UpdateEvent(context.Background(), commands.UpdateEventInput{
		EventID:  ev.ID(),
		ExpertID: s.expertID,
		Name:     "Discovery Call",
		Active:   &inactive,
	})

	s.Require().NoError(err)
	s.Equal("Discovery Call", s.state.events[ev.ID()].Name())
	s.False(s.state.events[ev.ID()].IsActive())
}

func (s *EventUseCaseTestSuite) TestUpdateEvent_OwnedByAnotherExpert() {
	ev := s.seedEvent("intro-call")

	err := s.uc.UpdateEvent(context.Background(), commands.UpdateEventInput{
		EventID:  ev.ID(),
		ExpertID: uuid.New(),
		Name:     "Hijacked",
	})

	s.Require().ErrorIs(err, errs.ErrEventNotFoundOrInactive)
}

func (s *EventUseCaseTestSuite) TestDeleteEvent_NeverBooked() {
	ev := s.seedEvent("intro-call")

	err := s.uc.DeleteEvent(context.Background(), ev.ID(), s.expertID)

	s.Require().NoError(err)
	s.NotContains(s.state.events, ev.ID())
}

func (s *EventUseCaseTestSuite) TestDeleteEvent_WithMeetingsDeactivates() {
	ev := s.seedEvent("intro-call")

	guest, err := meeting.NewGuest("Ana Silva", "ana@example.com", "Europe/Lisbon")
	s.Require().NoError(err)
	start := time.Date(2025, time.June, 2, 15, 0, 0, 0, time.UTC)
	m, err := meeting.NewMeeting(ev.ID(), s.expertID, guest, start, ev.Duration(), "", s.now)
	s.Require().NoError(err)
	s.state.meetings = append(s.state.meetings, m)

	err = s.uc.DeleteEvent(context.Background(), ev.ID(), s.expertID)

	s.Require().ErrorIs(err, errs.ErrEventHasMeetings)
	s.Require().Contains(s.state.events, ev.ID(), "event with history is kept")
	s.False(s.state.events[ev.ID()].IsActive(), "but stops taking bookings")
}

func (s *EventUseCaseTestSuite) TestDeleteEvent_NotFound() {
	err := s.uc.DeleteEvent(context.Background(), uuid.New(), s.expertID)

	s.Require().ErrorIs(err, errs.ErrEventNotFoundOrInactive)
}

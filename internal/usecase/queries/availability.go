package queries

import (
	"context"
	"time"

	"eleva-booking/internal/domain/slot"
	"eleva-booking/internal/infra"
	"eleva-booking/internal/pkg/clock"
	"eleva-booking/internal/pkg/config"
	"eleva-booking/internal/pkg/errs"
	"eleva-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AvailabilityQueries interface {
	ListAvailableSlots(ctx context.Context, in ListSlotsInput) (*AvailabilityResult, error)
}

// availabilityQueryImpl produces the bookable slots for an event page:
// generation over the schedule windows, then validation against notice,
// blocked dates and the merged busy set.
type availabilityQueryImpl struct {
	uow      shared.UnitOfWork
	calendar shared.CalendarProvider
	clock    clock.Clock
	cfg      config.BookingConfig
}

func NewAvailabilityQueries(
	uow shared.UnitOfWork,
	calendar shared.CalendarProvider,
	clk clock.Clock,
	cfg config.BookingConfig,
) AvailabilityQueries {
	return &availabilityQueryImpl{uow: uow, calendar: calendar, clock: clk, cfg: cfg}
}

type ListSlotsInput struct {
	ExpertID  uuid.UUID
	EventSlug string
	From      time.Time
	To        time.Time
}

type AvailabilityResult struct {
	EventID     uuid.UUID
	EventName   string
	DurationMin int
	Timezone    string
	Slots       []time.Time
	// Degraded means external calendar data was unavailable and the
	// slots reflect schedule and meetings only.
	Degraded bool
}

func (q *availabilityQueryImpl) ListAvailableSlots(ctx context.Context, in ListSlotsInput) (*AvailabilityResult, error) {
	now := q.clock.Now()

	from := in.From.UTC()
	if from.Before(now) {
		from = now
	}
	to := in.To.UTC()
	if !from.Before(to) {
		return nil, errs.Mark(errs.New("empty availability range"), errs.ErrDomainValidation)
	}
	if limit := from.AddDate(0, 0, q.cfg.MaxRangeDays); to.After(limit) {
		to = limit
	}

	reads := q.uow.CommandReads()

	ev, err := reads.EventBySlug(ctx, in.ExpertID, in.EventSlug)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrEventNotFoundOrInactive)
		}
		return nil, err
	}
	if !ev.IsActive() {
		return nil, errs.Mark(errs.New("event is inactive"), errs.ErrEventNotFoundOrInactive)
	}

	sched, err := reads.ScheduleByExpert(ctx, in.ExpertID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrScheduleNotFound)
		}
		return nil, err
	}
	blocked, err := reads.BlockedDatesByExpert(ctx, in.ExpertID)
	if err != nil {
		return nil, err
	}

	// Widened so intervals just outside the range still conflict once
	// buffers expand them.
	busyFrom := from.Add(-sched.AfterEventBuffer())
	busyTo := to.Add(ev.Duration() + sched.BeforeEventBuffer())
	busy, degraded, err := shared.CollectBusy(ctx, reads, q.calendar, in.ExpertID, busyFrom, busyTo)
	if err != nil {
		return nil, err
	}

	candidates := slot.Generate(sched, ev.Duration(), from, to, now)
	valid := slot.Validate(candidates, sched, ev.Duration(), blocked, busy, now)

	return &AvailabilityResult{
		EventID:     ev.ID(),
		EventName:   ev.Name(),
		DurationMin: ev.DurationMinutes(),
		Timezone:    sched.Timezone(),
		Slots:       valid,
		Degraded:    degraded,
	}, nil
}

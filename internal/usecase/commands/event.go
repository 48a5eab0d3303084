package commands

import (
	"context"

	"eleva-booking/internal/domain/event"
	"eleva-booking/internal/infra"
	"eleva-booking/internal/pkg/clock"
	"eleva-booking/internal/pkg/errs"
	"eleva-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type EventCommands interface {
	CreateEvent(ctx context.Context, in CreateEventInput) (uuid.UUID, error)
	UpdateEvent(ctx context.Context, in UpdateEventInput) error
	DeleteEvent(ctx context.Context, eventID, expertID uuid.UUID) error
}

type eventUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewEventCommands(uow shared.UnitOfWork, clk clock.Clock) EventCommands {
	return &eventUseCaseImpl{uow: uow, clock: clk}
}

type CreateEventInput struct {
	ExpertID    uuid.UUID
	Slug        string
	Name        string
	DurationMin int
}

func (c *eventUseCaseImpl) CreateEvent(ctx context.Context, in CreateEventInput) (uuid.UUID, error) {
	ev, err := event.NewEvent(in.ExpertID, in.Slug, in.Name, in.DurationMin, c.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, err := tx.Events().Create(ctx, tx.DB(), ev)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
			return err
		}
		id = created
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

type UpdateEventInput struct {
	EventID  uuid.UUID
	ExpertID uuid.UUID
	Name     string
	Active   *bool
}

func (c *eventUseCaseImpl) UpdateEvent(ctx context.Context, in UpdateEventInput) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ev, err := c.ownedEvent(ctx, tx, in.EventID, in.ExpertID)
		if err != nil {
			return err
		}

		if in.Name != "" {
			ev.Rename(in.Name, now)
		}
		if in.Active != nil {
			if *in.Active {
				ev.Activate(now)
			} else {
				ev.Deactivate(now)
			}
		}
		return tx.Events().Update(ctx, tx.DB(), ev)
	})
}

// DeleteEvent removes an event that was never booked. Events with
// meetings on record are deactivated instead, so history and
// notifications stay resolvable.
func (c *eventUseCaseImpl) DeleteEvent(ctx context.Context, eventID, expertID uuid.UUID) error {
	now := c.clock.Now()

	var deactivated bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ev, err := c.ownedEvent(ctx, tx, eventID, expertID)
		if err != nil {
			return err
		}

		booked, err := tx.Events().HasMeetings(ctx, tx.DB(), ev.ID())
		if err != nil {
			return err
		}
		if booked {
			ev.Deactivate(now)
			deactivated = true
			return tx.Events().Update(ctx, tx.DB(), ev)
		}
		return tx.Events().Delete(ctx, tx.DB(), ev.ID())
	})
	if err != nil {
		return err
	}
	if deactivated {
		// The deactivation committed; the caller learns the event was
		// kept because meetings reference it.
		return errs.Mark(errs.New("event has meetings, deactivated instead"), errs.ErrEventHasMeetings)
	}
	return nil
}

func (c *eventUseCaseImpl) ownedEvent(ctx context.Context, tx shared.Tx, eventID, expertID uuid.UUID) (*event.Event, error) {
	ev, err := tx.Reads().EventByID(ctx, eventID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrEventNotFoundOrInactive)
		}
		return nil, err
	}
	if ev.ExpertID() != expertID {
		return nil, errs.Mark(errs.New("event owned by another expert"), errs.ErrEventNotFoundOrInactive)
	}
	return ev, nil
}

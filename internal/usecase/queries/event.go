package queries

import (
	"context"
	"time"

	"eleva-booking/internal/infra"
	"eleva-booking/internal/pkg/errs"
	"eleva-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type EventQueries interface {
	ListEvents(ctx context.Context, expertID uuid.UUID) ([]EventView, error)
	GetEventBySlug(ctx context.Context, expertID uuid.UUID, slug string) (*EventView, error)
}

type eventQueryImpl struct {
	uow shared.UnitOfWork
}

func NewEventQueries(uow shared.UnitOfWork) EventQueries {
	return &eventQueryImpl{uow: uow}
}

type EventView struct {
	ID          uuid.UUID
	Slug        string
	Name        string
	DurationMin int
	Active      bool
	CreatedAt   time.Time
}

func (q *eventQueryImpl) ListEvents(ctx context.Context, expertID uuid.UUID) ([]EventView, error) {
	events, err := q.uow.CommandReads().EventsByExpert(ctx, expertID)
	if err != nil {
		return nil, err
	}

	views := make([]EventView, 0, len(events))
	for _, ev := range events {
		views = append(views, EventView{
			ID:          ev.ID(),
			Slug:        ev.Slug(),
			Name:        ev.Name(),
			DurationMin: ev.DurationMinutes(),
			Active:      ev.IsActive(),
			CreatedAt:   ev.CreatedAt(),
		})
	}
	return views, nil
}

func (q *eventQueryImpl) GetEventBySlug(ctx context.Context, expertID uuid.UUID, slug string) (*EventView, error) {
	ev, err := q.uow.CommandReads().EventBySlug(ctx, expertID, slug)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrEventNotFoundOrInactive)
		}
		return nil, err
	}
	return &EventView{
		ID:          ev.ID(),
		Slug:        ev.Slug(),
		Name:        ev.Name(),
		DurationMin: ev.DurationMinutes(),
		Active:      ev.IsActive(),
		CreatedAt:   ev.CreatedAt(),
	}, nil
}

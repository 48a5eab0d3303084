package commands

import (
	"context"
	"time"

	"eleva-booking/internal/domain/schedule"
	"eleva-booking/internal/infra"
	"eleva-booking/internal/pkg/errs"
	"eleva-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ScheduleCommands interface {
	UpsertSchedule(ctx context.Context, in UpsertScheduleInput) error
	AddBlockedDate(ctx context.Context, in AddBlockedDateInput) (uuid.UUID, error)
	RemoveBlockedDate(ctx context.Context, expertID, blockedDateID uuid.UUID) error
}

type scheduleUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewScheduleCommands(uow shared.UnitOfWork) ScheduleCommands {
	return &scheduleUseCaseImpl{uow: uow}
}

type WindowInput struct {
	StartMinute int
	EndMinute   int
}

type UpsertScheduleInput struct {
	ExpertID          uuid.UUID
	Timezone          string
	Weekly            map[time.Weekday][]WindowInput
	BeforeBufferMin   int
	AfterBufferMin    int
	MinimumNoticeMin  int
	IntervalMin       int
	BookingWindowDays int
}

// UpsertSchedule replaces the expert's weekly availability wholesale.
// Existing meetings are untouched: a schedule change only narrows what
// can be booked from now on.
func (c *scheduleUseCaseImpl) UpsertSchedule(ctx context.Context, in UpsertScheduleInput) error {
	byDay := make(map[time.Weekday][]schedule.Window, len(in.Weekly))
	for day, windows := range in.Weekly {
		for _, w := range windows {
			window, err := schedule.NewWindow(w.StartMinute, w.EndMinute)
			if err != nil {
				return errs.Mark(err, errs.ErrInvalidSchedule)
			}
			byDay[day] = append(byDay[day], window)
		}
	}
	weekly, err := schedule.NewWeeklyWindows(byDay)
	if err != nil {
		return errs.Mark(err, errs.ErrInvalidSchedule)
	}

	sched, err := schedule.NewSchedule(
		in.ExpertID, in.Timezone, weekly,
		in.BeforeBufferMin, in.AfterBufferMin,
		in.MinimumNoticeMin, in.IntervalMin, in.BookingWindowDays,
	)
	if err != nil {
		return errs.Mark(err, errs.ErrInvalidSchedule)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Schedules().Upsert(ctx, tx.DB(), sched)
	})
}

type AddBlockedDateInput struct {
	ExpertID uuid.UUID
	Date     string
	Timezone string
	Reason   string
}

func (c *scheduleUseCaseImpl) AddBlockedDate(ctx context.Context, in AddBlockedDateInput) (uuid.UUID, error) {
	blocked, err := schedule.NewBlockedDate(in.ExpertID, in.Date, in.Timezone, in.Reason)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrInvalidSchedule)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Schedules().AddBlockedDate(ctx, tx.DB(), blocked)
		if infra.IsKind(err, infra.KindDuplicateKey) {
			// Already blocked: same outcome, idempotent.
			return nil
		}
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return blocked.ID(), nil
}

func (c *scheduleUseCaseImpl) RemoveBlockedDate(ctx context.Context, expertID, blockedDateID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Schedules().RemoveBlockedDate(ctx, tx.DB(), expertID, blockedDateID)
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrScheduleNotFound)
		}
		return err
	})
}

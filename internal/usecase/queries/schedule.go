package queries

import (
	"context"
	"time"

	"eleva-booking/internal/infra"
	"eleva-booking/internal/pkg/errs"
	"eleva-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ScheduleQueries interface {
	GetSchedule(ctx context.Context, expertID uuid.UUID) (*ScheduleView, error)
	ListBlockedDates(ctx context.Context, expertID uuid.UUID) ([]BlockedDateView, error)
}

type scheduleQueryImpl struct {
	uow shared.UnitOfWork
}

func NewScheduleQueries(uow shared.UnitOfWork) ScheduleQueries {
	return &scheduleQueryImpl{uow: uow}
}

type WindowView struct {
	StartMinute int
	EndMinute   int
}

type ScheduleView struct {
	Timezone          string
	Weekly            map[time.Weekday][]WindowView
	BeforeBufferMin   int
	AfterBufferMin    int
	MinimumNoticeMin  int
	IntervalMin       int
	BookingWindowDays int
}

type BlockedDateView struct {
	ID       uuid.UUID
	Date     string
	Timezone string
	Reason   string
}

func (q *scheduleQueryImpl) GetSchedule(ctx context.Context, expertID uuid.UUID) (*ScheduleView, error) {
	sched, err := q.uow.CommandReads().ScheduleByExpert(ctx, expertID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrScheduleNotFound)
		}
		return nil, err
	}

	weekly := make(map[time.Weekday][]WindowView)
	for day := time.Sunday; day <= time.Saturday; day++ {
		for _, w := range sched.Weekly().ForDay(day) {
			weekly[day] = append(weekly[day], WindowView{
				StartMinute: w.StartMinute(),
				EndMinute:   w.EndMinute(),
			})
		}
	}

	return &ScheduleView{
		Timezone:          sched.Timezone(),
		Weekly:            weekly,
		BeforeBufferMin:   int(sched.BeforeEventBuffer() / time.Minute),
		AfterBufferMin:    int(sched.AfterEventBuffer() / time.Minute),
		MinimumNoticeMin:  int(sched.MinimumNotice() / time.Minute),
		IntervalMin:       int(sched.TimeSlotInterval() / time.Minute),
		BookingWindowDays: sched.BookingWindowDays(),
	}, nil
}

func (q *scheduleQueryImpl) ListBlockedDates(ctx context.Context, expertID uuid.UUID) ([]BlockedDateView, error) {
	blocked, err := q.uow.CommandReads().BlockedDatesByExpert(ctx, expertID)
	if err != nil {
		return nil, err
	}

	views := make([]BlockedDateView, 0, len(blocked))
	for _, b := range blocked {
		views = append(views, BlockedDateView{
			ID:       b.ID(),
			Date:     b.Date(),
			Timezone: b.Timezone(),
			Reason:   b.Reason(),
		})
	}
	return views, nil
}

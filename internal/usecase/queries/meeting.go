package queries

import (
	"context"
	"time"

	"eleva-booking/internal/pkg/clock"
	"eleva-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type MeetingQueries interface {
	ListUpcomingMeetings(ctx context.Context, expertID uuid.UUID, limit int) ([]MeetingView, error)
}

type meetingQueryImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewMeetingQueries(uow shared.UnitOfWork, clk clock.Clock) MeetingQueries {
	return &meetingQueryImpl{uow: uow, clock: clk}
}

type MeetingView struct {
	ID            uuid.UUID
	EventID       uuid.UUID
	GuestName     string
	GuestEmail    string
	GuestTimezone string
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	PaymentStatus string
}

func (q *meetingQueryImpl) ListUpcomingMeetings(ctx context.Context, expertID uuid.UUID, limit int) ([]MeetingView, error) {
	meetings, err := q.uow.CommandReads().UpcomingMeetingsByExpert(ctx, expertID, q.clock.Now(), limit)
	if err != nil {
		return nil, err
	}

	views := make([]MeetingView, 0, len(meetings))
	for _, m := range meetings {
		views = append(views, MeetingView{
			ID:            m.ID(),
			EventID:       m.EventID(),
			GuestName:     m.Guest().Name(),
			GuestEmail:    m.Guest().Email(),
			GuestTimezone: m.Guest().DisplayTimezone(),
			StartTime:     m.StartTime(),
			EndTime:       m.EndTime(),
			Status:        string(m.Status()),
			PaymentStatus: string(m.PaymentStatus()),
		})
	}
	return views, nil
}

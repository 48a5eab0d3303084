package readstore

import (
	"context"
	"errors"
	"time"

	"eleva-booking/internal/domain/schedule"
	"eleva-booking/internal/infra"
	"eleva-booking/internal/infra/db"
	"eleva-booking/internal/infra/repository"
	"eleva-booking/internal/pkg/tz"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ScheduleReadStore struct{}

func NewScheduleReadStore() *ScheduleReadStore {
	return &ScheduleReadStore{}
}

func (s *ScheduleReadStore) FindByExpert(ctx context.Context, dbtx db.DBTX, expertID uuid.UUID) (*schedule.Schedule, error) {
	var (
		timezone                                           string
		weeklyJSON                                         []byte
		beforeBuf, afterBuf, notice, interval, bookingDays int
	)
	err := dbtx.QueryRow(ctx, `
		SELECT timezone, weekly_windows,
		       before_buffer_min, after_buffer_min, minimum_notice_min,
		       time_slot_interval_min, booking_window_days
		FROM schedules
		WHERE expert_id = $1
	`, expertID).Scan(&timezone, &weeklyJSON, &beforeBuf, &afterBuf, &notice, &interval, &bookingDays)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "schedule not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to load schedule", err)
	}

	weekly, err := repository.WeeklyFromJSON(weeklyJSON)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "corrupt weekly windows", err)
	}

	sched, err := schedule.NewSchedule(expertID, timezone, weekly, beforeBuf, afterBuf, notice, interval, bookingDays)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "corrupt schedule row", err)
	}
	return sched, nil
}

func (s *ScheduleReadStore) BlockedDatesByExpert(ctx context.Context, dbtx db.DBTX, expertID uuid.UUID) ([]*schedule.BlockedDate, error) {
	rows, err := dbtx.Query(ctx, `
		SELECT id, blocked_on, timezone, reason
		FROM blocked_dates
		WHERE expert_id = $1
		ORDER BY blocked_on
	`, expertID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to load blocked dates", err)
	}
	defer rows.Close()

	var result []*schedule.BlockedDate
	for rows.Next() {
		var (
			id               uuid.UUID
			blockedOn        time.Time
			timezone, reason string
		)
		// blocked_on is a date column; pgx delivers it in binary format,
		// which only decodes into time-typed destinations.
		if err := rows.Scan(&id, &blockedOn, &timezone, &reason); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan blocked date", err)
		}
		loc, err := tz.Load(timezone)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "corrupt blocked date timezone", err)
		}
		result = append(result, schedule.ReconstructBlockedDate(id, expertID, blockedOn.Format(tz.DateLayout), loc, reason))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read blocked dates", err)
	}
	return result, nil
}

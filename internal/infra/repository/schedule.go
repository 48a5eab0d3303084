package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"eleva-booking/internal/domain/schedule"
	"eleva-booking/internal/infra"
	"eleva-booking/internal/infra/db"
	"eleva-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type ScheduleRepository struct{}

func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{}
}

// weekly windows are persisted as jsonb keyed by weekday number,
// e.g. {"1":[{"start":540,"end":1020}]} for Monday 09:00-17:00.
type windowRow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func WeeklyToJSON(weekly schedule.WeeklyWindows) ([]byte, error) {
	out := make(map[string][]windowRow, len(weekly))
	for day := time.Sunday; day <= time.Saturday; day++ {
		windows := weekly.ForDay(day)
		if len(windows) == 0 {
			continue
		}
		rows := make([]windowRow, 0, len(windows))
		for _, w := range windows {
			rows = append(rows, windowRow{Start: w.StartMinute(), End: w.EndMinute()})
		}
		out[strconv.Itoa(int(day))] = rows
	}
	return json.Marshal(out)
}

func WeeklyFromJSON(raw []byte) (schedule.WeeklyWindows, error) {
	var decoded map[string][]windowRow
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, errs.Wrap(err, "malformed weekly windows")
	}
	byDay := make(map[time.Weekday][]schedule.Window, len(decoded))
	for key, rows := range decoded {
		dayNum, err := strconv.Atoi(key)
		if err != nil || dayNum < 0 || dayNum > 6 {
			return nil, errs.New("weekly windows key out of range")
		}
		windows := make([]schedule.Window, 0, len(rows))
		for _, row := range rows {
			w, err := schedule.NewWindow(row.Start, row.End)
			if err != nil {
				return nil, err
			}
			windows = append(windows, w)
		}
		byDay[time.Weekday(dayNum)] = windows
	}
	return schedule.NewWeeklyWindows(byDay)
}

func (r *ScheduleRepository) Upsert(ctx context.Context, tx db.DBTX, s *schedule.Schedule) error {
	weeklyJSON, err := WeeklyToJSON(s.Weekly())
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to encode weekly windows", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO schedules (
			expert_id, timezone, weekly_windows,
			before_buffer_min, after_buffer_min, minimum_notice_min,
			time_slot_interval_min, booking_window_days, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (expert_id) DO UPDATE
		SET timezone               = EXCLUDED.timezone,
		    weekly_windows         = EXCLUDED.weekly_windows,
		    before_buffer_min      = EXCLUDED.before_buffer_min,
		    after_buffer_min       = EXCLUDED.after_buffer_min,
		    minimum_notice_min     = EXCLUDED.minimum_notice_min,
		    time_slot_interval_min = EXCLUDED.time_slot_interval_min,
		    booking_window_days    = EXCLUDED.booking_window_days,
		    updated_at             = now()
	`,
		s.ExpertID(), s.Timezone(), weeklyJSON,
		int(s.BeforeEventBuffer()/time.Minute), int(s.AfterEventBuffer()/time.Minute),
		int(s.MinimumNotice()/time.Minute), int(s.TimeSlotInterval()/time.Minute),
		s.BookingWindowDays(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to upsert schedule", err)
	}
	return nil
}

func (r *ScheduleRepository) AddBlockedDate(ctx context.Context, tx db.DBTX, b *schedule.BlockedDate) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO blocked_dates (id, expert_id, blocked_on, timezone, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
	`, b.ID(), b.ExpertID(), b.Date(), b.Timezone(), b.Reason())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return infra.WrapRepoErr(infra.KindDuplicateKey, "date already blocked", err)
		}
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to add blocked date", err)
	}
	return nil
}

func (r *ScheduleRepository) RemoveBlockedDate(ctx context.Context, tx db.DBTX, expertID, blockedDateID uuid.UUID) error {
	tag, err := tx.Exec(ctx, `
		DELETE FROM blocked_dates
		WHERE id = $1 AND expert_id = $2
	`, blockedDateID, expertID)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to remove blocked date", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "blocked date not found", nil)
	}
	return nil
}

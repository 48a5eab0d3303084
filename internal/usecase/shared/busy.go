package shared

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"eleva-booking/internal/domain/slot"
	"eleva-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// CollectBusy assembles the busy set the slot validator consumes:
// confirmed meetings plus external calendar intervals. A calendar
// failure never empties the set; the result falls back to meetings only
// and degraded=true so callers can surface the reduced confidence.
func CollectBusy(
	ctx context.Context,
	reads CommandReads,
	cal CalendarProvider,
	expertID uuid.UUID,
	from, to time.Time,
) (busy []slot.Interval, degraded bool, err error) {
	meetingBusy, err := reads.MeetingBusyBetween(ctx, expertID, from, to)
	if err != nil {
		return nil, false, err
	}
	for _, iv := range meetingBusy {
		busy = append(busy, slot.Interval{Start: iv.Start, End: iv.End})
	}

	calBusy, err := cal.BusyIntervals(ctx, expertID, from, to)
	if err != nil {
		if !errors.Is(err, errs.ErrCalendarDisabled) {
			slog.Warn("calendar busy lookup failed, degrading to meetings only",
				"expert_id", expertID,
				"error", err.Error())
		}
		return busy, true, nil
	}
	for _, iv := range calBusy {
		busy = append(busy, slot.Interval{Start: iv.Start, End: iv.End})
	}
	return busy, false, nil
}

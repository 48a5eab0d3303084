package slot

import (
	"time"

	"eleva-booking/internal/domain/schedule"
	"eleva-booking/internal/pkg/tz"
)

// Generate enumerates candidate start instants for an event of the
// given duration within [rangeStart, rangeEnd), clamped to the
// schedule's booking horizon from now. Output is ascending,
// deduplicated UTC instants.
//
// Windows are resolved per local calendar day in the schedule timezone,
// so a window on a DST transition day covers the actually observable
// wall-clock minutes of that day rather than a fixed UTC offset.
func Generate(sched *schedule.Schedule, duration time.Duration, rangeStart, rangeEnd, now time.Time) []time.Time {
	if duration <= 0 || !rangeStart.Before(rangeEnd) {
		return nil
	}

	from := rangeStart
	if now.After(from) {
		from = now
	}
	to := rangeEnd
	if horizon := sched.Horizon(now); horizon.Before(to) {
		to = horizon
	}
	if !from.Before(to) {
		return nil
	}

	loc := sched.Location()
	interval := sched.TimeSlotInterval()

	var candidates []time.Time
	var last time.Time

	for dayStart := tz.StartOfDay(from, loc); dayStart.Before(to); dayStart = tz.NextDay(dayStart, loc) {
		local := dayStart.In(loc)
		year, month, day := local.Date()

		for _, window := range sched.Weekly().ForDay(local.Weekday()) {
			windowEnd := tz.AtMinute(year, month, day, window.EndMinute(), loc)

			for minute := window.StartMinute(); ; minute += int(interval / time.Minute) {
				start := tz.AtMinute(year, month, day, minute, loc)
				if start.Add(duration).After(windowEnd) {
					break
				}
				if start.Before(from) || !start.Before(to) {
					continue
				}
				// Fall-back transitions can replay a wall-clock minute
				// onto an instant already emitted.
				if !last.IsZero() && !start.After(last) {
					continue
				}
				candidates = append(candidates, start)
				last = start
			}
		}
	}

	return candidates
}

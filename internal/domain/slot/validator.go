package slot

import (
	"time"

	"eleva-booking/internal/domain/schedule"
)

// Validate reduces generator candidates to the ones bookable right now.
// Pure given its inputs: the same candidates, schedule, blocked dates
// and busy intervals always produce the same result, and "now" is read
// exactly once by the caller and passed in.
//
// Filtering order (each stage strictly narrows the set):
//  1. minimum notice: start must be at or after now + minimumNotice
//  2. blocked dates: the candidate's local calendar date, computed in
//     the timezone each block was stored with, must not be blocked
//  3. busy intervals: [start, start+duration) must not intersect any
//     busy interval (meetings and calendar events alike) widened by the
//     schedule buffers
func Validate(
	candidates []time.Time,
	sched *schedule.Schedule,
	duration time.Duration,
	blocked []*schedule.BlockedDate,
	busy []Interval,
	now time.Time,
) []time.Time {
	if len(candidates) == 0 {
		return nil
	}

	earliest := now.Add(sched.MinimumNotice())

	expanded := make([]Interval, 0, len(busy))
	for _, iv := range busy {
		expanded = append(expanded, iv.Expand(sched.BeforeEventBuffer(), sched.AfterEventBuffer()))
	}
	merged := Merge(expanded)

	valid := make([]time.Time, 0, len(candidates))
	busyIdx := 0

next:
	for _, start := range candidates {
		if start.Before(earliest) {
			continue
		}

		for _, b := range blocked {
			if b.Covers(start) {
				continue next
			}
		}

		candidate := Interval{Start: start, End: start.Add(duration)}

		// Candidates are ascending, so intervals entirely behind the
		// candidate never match again.
		for busyIdx < len(merged) && !merged[busyIdx].End.After(candidate.Start) {
			busyIdx++
		}
		for i := busyIdx; i < len(merged) && merged[i].Start.Before(candidate.End); i++ {
			if candidate.Overlaps(merged[i]) {
				continue next
			}
		}

		valid = append(valid, start)
	}

	if len(valid) == 0 {
		return nil
	}
	return valid
}

// Contains reports whether a specific start instant survives
// validation. The conflict resolver re-validates the requested slot at
// confirmation time with this.
func Contains(validated []time.Time, start time.Time) bool {
	for _, v := range validated {
		if v.Equal(start) {
			return true
		}
	}
	return false
}

package slot

import (
	"sort"
	"time"
)

// Interval is a half-open [Start, End) range of UTC instants during
// which the expert is unavailable.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) IsZero() bool {
	return i.Start.IsZero() && i.End.IsZero()
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Expand widens the interval by the schedule buffers. A meeting or
// calendar event claims padding before its start and after its end, so
// no other meeting may start or end inside the widened range.
func (i Interval) Expand(before, after time.Duration) Interval {
	return Interval{
		Start: i.Start.Add(-before),
		End:   i.End.Add(after),
	}
}

// Merge sorts intervals and coalesces overlapping or touching ones.
// The validator walks candidates against the merged set in one pass.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Start.Before(sorted[b].Start) })

	merged := sorted[:1]
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

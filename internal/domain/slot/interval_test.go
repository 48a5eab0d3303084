//go:build unit

package slot_test

import (
	"testing"
	"time"

	"eleva-booking/internal/domain/slot"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.June, 2, hour, minute, 0, 0, time.UTC)
}

func TestIntervalOverlaps(t *testing.T) {
	base := slot.Interval{Start: at(10, 0), End: at(11, 0)}

	testCases := []struct {
		name     string
		other    slot.Interval
		overlaps bool
	}{
		{"identical", slot.Interval{Start: at(10, 0), End: at(11, 0)}, true},
		{"contained", slot.Interval{Start: at(10, 15), End: at(10, 45)}, true},
		{"straddles start", slot.Interval{Start: at(9, 30), End: at(10, 30)}, true},
		{"straddles end", slot.Interval{Start: at(10, 30), End: at(11, 30)}, true},
		{"touches end", slot.Interval{Start: at(11, 0), End: at(12, 0)}, false},
		{"touches start", slot.Interval{Start: at(9, 0), End: at(10, 0)}, false},
		{"disjoint", slot.Interval{Start: at(12, 0), End: at(13, 0)}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, base.Overlaps(tc.other))
			assert.Equal(t, tc.overlaps, tc.other.Overlaps(base))
		})
	}
}

func TestIntervalExpand(t *testing.T) {
	iv := slot.Interval{Start: at(10, 0), End: at(11, 0)}
	got := iv.Expand(15*time.Minute, 30*time.Minute)

	assert.Equal(t, at(9, 45), got.Start)
	assert.Equal(t, at(11, 30), got.End)
}

func TestMerge(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, slot.Merge(nil))
	})

	t.Run("overlapping and touching coalesce", func(t *testing.T) {
		got := slot.Merge([]slot.Interval{
			{Start: at(12, 0), End: at(13, 0)},
			{Start: at(9, 0), End: at(10, 0)},
			{Start: at(9, 30), End: at(10, 30)},
			{Start: at(10, 30), End: at(11, 0)},
		})

		assert.Equal(t, []slot.Interval{
			{Start: at(9, 0), End: at(11, 0)},
			{Start: at(12, 0), End: at(13, 0)},
		}, got)
	})

	t.Run("input not mutated", func(t *testing.T) {
		in := []slot.Interval{
			{Start: at(12, 0), End: at(13, 0)},
			{Start: at(9, 0), End: at(10, 0)},
		}
		_ = slot.Merge(in)
		assert.Equal(t, at(12, 0), in[0].Start)
	})
}

//go:build unit

package slot_test

import (
	"testing"
	"time"

	"eleva-booking/internal/domain/schedule"
	"eleva-booking/internal/domain/slot"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSchedule(t *testing.T, timezone string, byDay map[time.Weekday][]schedule.Window, beforeBuf, afterBuf, notice, interval, windowDays int) *schedule.Schedule {
	t.Helper()
	weekly, err := schedule.NewWeeklyWindows(byDay)
	require.NoError(t, err)
	sched, err := schedule.NewSchedule(uuid.New(), timezone, weekly, beforeBuf, afterBuf, notice, interval, windowDays)
	require.NoError(t, err)
	return sched
}

func window(t *testing.T, startMin, endMin int) schedule.Window {
	t.Helper()
	w, err := schedule.NewWindow(startMin, endMin)
	require.NoError(t, err)
	return w
}

func TestGenerate_WeekdayWindows(t *testing.T) {
	// Monday 09:00-17:00 in New York, 30 minute slots.
	sched := newSchedule(t, "America/New_York", map[time.Weekday][]schedule.Window{
		time.Monday: {window(t, 9*60, 17*60)},
	}, 0, 0, 0, 30, 60)

	// 2025-01-06 is a Monday; EST is UTC-5.
	now := time.Date(2025, time.January, 5, 12, 0, 0, 0, time.UTC)
	rangeStart := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2025, time.January, 7, 0, 0, 0, 0, time.UTC)

	got := slot.Generate(sched, 30*time.Minute, rangeStart, rangeEnd, now)

	var want []time.Time
	for m := 0; m < 8*60; m += 30 {
		want = append(want, time.Date(2025, time.January, 6, 14, 0, 0, 0, time.UTC).Add(time.Duration(m)*time.Minute))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("slots mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_LastSlotFitsDuration(t *testing.T) {
	sched := newSchedule(t, "UTC", map[time.Weekday][]schedule.Window{
		time.Monday: {window(t, 9*60, 10*60)},
	}, 0, 0, 0, 15, 60)

	now := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	rangeStart := now
	rangeEnd := now.AddDate(0, 0, 3)

	// 45 minute event in a one hour window: only 09:00 and 09:15 fit.
	got := slot.Generate(sched, 45*time.Minute, rangeStart, rangeEnd, now)

	want := []time.Time{
		time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC),
		time.Date(2025, time.January, 6, 9, 15, 0, 0, time.UTC),
	}
	assert.Equal(t, want, got)
}

func TestGenerate_WindowShorterThanDuration(t *testing.T) {
	sched := newSchedule(t, "UTC", map[time.Weekday][]schedule.Window{
		time.Monday: {window(t, 9*60, 9*60+20)},
	}, 0, 0, 0, 15, 60)

	now := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	got := slot.Generate(sched, 30*time.Minute, now, now.AddDate(0, 0, 7), now)

	assert.Empty(t, got)
}

func TestGenerate_SpringForwardShrinksWindow(t *testing.T) {
	// 2025-03-09 in New York: clocks jump 02:00 -> 03:00. A 01:00-04:00
	// window covers only two real hours.
	sched := newSchedule(t, "America/New_York", map[time.Weekday][]schedule.Window{
		time.Sunday: {window(t, 1*60, 4*60)},
	}, 0, 0, 0, 60, 60)

	now := time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC)
	rangeStart := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	got := slot.Generate(sched, time.Hour, rangeStart, rangeEnd, now)

	// 01:00 EST = 06:00 UTC; the 02:00 wall-clock step lands on 03:00
	// EDT = 07:00 UTC; the 03:00 step repeats that instant and is
	// deduplicated. Window end 04:00 EDT = 08:00 UTC.
	want := []time.Time{
		time.Date(2025, time.March, 9, 6, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 9, 7, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, want, got)
}

func TestGenerate_FallBackStaysAscending(t *testing.T) {
	// 2025-11-02 in New York: clocks fall back 02:00 -> 01:00.
	sched := newSchedule(t, "America/New_York", map[time.Weekday][]schedule.Window{
		time.Sunday: {window(t, 0, 6*60)},
	}, 0, 0, 0, 30, 60)

	now := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	rangeStart := time.Date(2025, time.November, 2, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC)

	got := slot.Generate(sched, 30*time.Minute, rangeStart, rangeEnd, now)
	require.NotEmpty(t, got)

	for i := 1; i < len(got); i++ {
		assert.True(t, got[i].After(got[i-1]), "slots must be strictly ascending: %v then %v", got[i-1], got[i])
	}
}

func TestGenerate_BookingWindowClampsRange(t *testing.T) {
	sched := newSchedule(t, "UTC", map[time.Weekday][]schedule.Window{
		time.Monday:    {window(t, 9*60, 17*60)},
		time.Tuesday:   {window(t, 9*60, 17*60)},
		time.Wednesday: {window(t, 9*60, 17*60)},
		time.Thursday:  {window(t, 9*60, 17*60)},
		time.Friday:    {window(t, 9*60, 17*60)},
	}, 0, 0, 0, 60, 7)

	now := time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC)
	got := slot.Generate(sched, 30*time.Minute, now, now.AddDate(0, 0, 30), now)

	require.NotEmpty(t, got)
	horizon := now.AddDate(0, 0, 7)
	for _, s := range got {
		assert.True(t, s.Before(horizon), "slot %v beyond booking window %v", s, horizon)
	}
}

func TestGenerate_PastCandidatesClamped(t *testing.T) {
	sched := newSchedule(t, "UTC", map[time.Weekday][]schedule.Window{
		time.Monday: {window(t, 9*60, 17*60)},
	}, 0, 0, 0, 30, 60)

	// Queried mid-window: nothing before "now" may come back.
	now := time.Date(2025, time.January, 6, 12, 15, 0, 0, time.UTC)
	got := slot.Generate(sched, 30*time.Minute, time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC), time.Date(2025, time.January, 7, 0, 0, 0, 0, time.UTC), now)

	require.NotEmpty(t, got)
	assert.Equal(t, time.Date(2025, time.January, 6, 12, 30, 0, 0, time.UTC), got[0])
}

//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"eleva-booking/internal/domain/schedule"
	"eleva-booking/internal/pkg/tz"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, start, end int) schedule.Window {
	t.Helper()
	w, err := schedule.NewWindow(start, end)
	require.NoError(t, err)
	return w
}

func TestNewWindow(t *testing.T) {
	testCases := []struct {
		name     string
		startMin int
		endMin   int
		errIs    error
	}{
		{name: "valid business hours", startMin: 9 * 60, endMin: 17 * 60},
		{name: "full day", startMin: 0, endMin: 24 * 60},
		{name: "start equals end", startMin: 600, endMin: 600, errIs: schedule.ErrInvalidWindow},
		{name: "start after end", startMin: 700, endMin: 600, errIs: schedule.ErrInvalidWindow},
		{name: "negative start", startMin: -10, endMin: 600, errIs: schedule.ErrInvalidWindow},
		{name: "end past midnight", startMin: 600, endMin: 24*60 + 1, errIs: schedule.ErrInvalidWindow},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schedule.NewWindow(tc.startMin, tc.endMin)
			if tc.errIs == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.errIs)
			}
		})
	}
}

func TestNewWeeklyWindows(t *testing.T) {
	t.Run("windows sorted per day", func(t *testing.T) {
		weekly, err := schedule.NewWeeklyWindows(map[time.Weekday][]schedule.Window{
			time.Monday: {mustWindow(t, 14*60, 17*60), mustWindow(t, 9*60, 12*60)},
		})
		require.NoError(t, err)

		windows := weekly.ForDay(time.Monday)
		require.Len(t, windows, 2)
		assert.Equal(t, 9*60, windows[0].StartMinute())
		assert.Equal(t, 14*60, windows[1].StartMinute())
	})

	t.Run("overlap within a day rejected", func(t *testing.T) {
		_, err := schedule.NewWeeklyWindows(map[time.Weekday][]schedule.Window{
			time.Monday: {mustWindow(t, 9*60, 12*60), mustWindow(t, 11*60, 14*60)},
		})
		require.ErrorIs(t, err, schedule.ErrOverlappingWindows)
	})

	t.Run("touching windows allowed", func(t *testing.T) {
		_, err := schedule.NewWeeklyWindows(map[time.Weekday][]schedule.Window{
			time.Monday: {mustWindow(t, 9*60, 12*60), mustWindow(t, 12*60, 14*60)},
		})
		require.NoError(t, err)
	})

	t.Run("unknown day is unavailable", func(t *testing.T) {
		weekly, err := schedule.NewWeeklyWindows(map[time.Weekday][]schedule.Window{
			time.Monday: {mustWindow(t, 9*60, 12*60)},
		})
		require.NoError(t, err)
		assert.Nil(t, weekly.ForDay(time.Sunday))
	})
}

func TestNewSchedule(t *testing.T) {
	weekly, err := schedule.NewWeeklyWindows(map[time.Weekday][]schedule.Window{
		time.Monday: {mustWindow(t, 9*60, 17*60)},
	})
	require.NoError(t, err)

	testCases := []struct {
		name                                                 string
		timezone                                             string
		beforeBuf, afterBuf, notice, interval, bookingWindow int
		errIs                                                error
	}{
		{name: "valid", timezone: "Europe/Lisbon", interval: 30, bookingWindow: 60},
		{name: "bad timezone", timezone: "Mars/Olympus", interval: 30, bookingWindow: 60, errIs: tz.ErrUnknownTimezone},
		{name: "negative before buffer", timezone: "UTC", beforeBuf: -1, interval: 30, bookingWindow: 60, errIs: schedule.ErrNegativeBuffer},
		{name: "negative after buffer", timezone: "UTC", afterBuf: -5, interval: 30, bookingWindow: 60, errIs: schedule.ErrNegativeBuffer},
		{name: "negative notice", timezone: "UTC", notice: -60, interval: 30, bookingWindow: 60, errIs: schedule.ErrNegativeNotice},
		{name: "zero interval", timezone: "UTC", interval: 0, bookingWindow: 60, errIs: schedule.ErrInvalidInterval},
		{name: "zero booking window", timezone: "UTC", interval: 30, bookingWindow: 0, errIs: schedule.ErrInvalidWindowDays},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sched, err := schedule.NewSchedule(uuid.New(), tc.timezone, weekly,
				tc.beforeBuf, tc.afterBuf, tc.notice, tc.interval, tc.bookingWindow)
			if tc.errIs == nil {
				require.NoError(t, err)
				assert.Equal(t, tc.timezone, sched.Timezone())
			} else {
				require.ErrorIs(t, err, tc.errIs)
			}
		})
	}
}

func TestBlockedDateCovers(t *testing.T) {
	expertID := uuid.New()

	t.Run("stored timezone decides the local day", func(t *testing.T) {
		blocked, err := schedule.NewBlockedDate(expertID, "2025-12-25", "America/Los_Angeles", "")
		require.NoError(t, err)

		// 2025-12-25 07:00 UTC is still 2025-12-24 23:00 in Los Angeles.
		assert.False(t, blocked.Covers(time.Date(2025, time.December, 25, 7, 0, 0, 0, time.UTC)))
		// 2025-12-25 09:00 UTC is 01:00 on the blocked day.
		assert.True(t, blocked.Covers(time.Date(2025, time.December, 25, 9, 0, 0, 0, time.UTC)))
		// 2025-12-26 07:59 UTC is 23:59 on the blocked day.
		assert.True(t, blocked.Covers(time.Date(2025, time.December, 26, 7, 59, 0, 0, time.UTC)))
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		_, err := schedule.NewBlockedDate(expertID, "25-12-2025", "UTC", "")
		require.Error(t, err)
	})

	t.Run("unknown timezone rejected", func(t *testing.T) {
		_, err := schedule.NewBlockedDate(expertID, "2025-12-25", "Nowhere/Town", "")
		require.ErrorIs(t, err, tz.ErrUnknownTimezone)
	})
}

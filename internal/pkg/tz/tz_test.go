//go:build unit

package tz_test

import (
	"testing"
	"time"

	"eleva-booking/internal/pkg/tz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("valid IANA name", func(t *testing.T) {
		loc, err := tz.Load("Europe/Lisbon")
		require.NoError(t, err)
		assert.Equal(t, "Europe/Lisbon", loc.String())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := tz.Load("")
		require.ErrorIs(t, err, tz.ErrUnknownTimezone)
	})

	t.Run("garbage name rejected", func(t *testing.T) {
		_, err := tz.Load("Not/AZone")
		require.ErrorIs(t, err, tz.ErrUnknownTimezone)
	})
}

func TestAtMinute(t *testing.T) {
	ny, err := tz.Load("America/New_York")
	require.NoError(t, err)

	t.Run("standard time offset", func(t *testing.T) {
		// 2025-01-06 09:00 EST = 14:00 UTC
		got := tz.AtMinute(2025, time.January, 6, 9*60, ny)
		assert.Equal(t, time.Date(2025, time.January, 6, 14, 0, 0, 0, time.UTC), got)
	})

	t.Run("daylight time offset", func(t *testing.T) {
		// 2025-06-02 09:00 EDT = 13:00 UTC
		got := tz.AtMinute(2025, time.June, 2, 9*60, ny)
		assert.Equal(t, time.Date(2025, time.June, 2, 13, 0, 0, 0, time.UTC), got)
	})

	t.Run("spring forward gap normalizes", func(t *testing.T) {
		// 2025-03-09 02:30 does not exist in New York; it lands at 03:30 EDT.
		got := tz.AtMinute(2025, time.March, 9, 2*60+30, ny)
		local := got.In(ny)
		assert.Equal(t, 3, local.Hour())
		assert.Equal(t, 30, local.Minute())
	})
}

func TestDateOf(t *testing.T) {
	lisbon, err := tz.Load("Europe/Lisbon")
	require.NoError(t, err)

	// 2025-12-25 00:30 Lisbon is 2025-12-25 00:30 UTC in winter, but the
	// same instant viewed from Pacific time is still the 24th there.
	la, err := tz.Load("America/Los_Angeles")
	require.NoError(t, err)

	instant := time.Date(2025, time.December, 25, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-12-25", tz.DateOf(instant, lisbon))
	assert.Equal(t, "2025-12-24", tz.DateOf(instant, la))
}

func TestParseDate(t *testing.T) {
	y, m, d, err := tz.ParseDate("2025-12-25")
	require.NoError(t, err)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.December, m)
	assert.Equal(t, 25, d)

	_, _, _, err = tz.ParseDate("25/12/2025")
	require.Error(t, err)
}

func TestNextDay(t *testing.T) {
	ny, err := tz.Load("America/New_York")
	require.NoError(t, err)

	t.Run("spring forward day is 23 hours", func(t *testing.T) {
		start := tz.StartOfDay(time.Date(2025, time.March, 9, 12, 0, 0, 0, time.UTC), ny)
		next := tz.NextDay(start, ny)
		assert.Equal(t, 23*time.Hour, next.Sub(start))
	})

	t.Run("fall back day is 25 hours", func(t *testing.T) {
		start := tz.StartOfDay(time.Date(2025, time.November, 2, 12, 0, 0, 0, time.UTC), ny)
		next := tz.NextDay(start, ny)
		assert.Equal(t, 25*time.Hour, next.Sub(start))
	})
}

package tz

import (
	"time"

	"eleva-booking/internal/pkg/errs"
)

// This package is the only place where wall-clock values in a named
// timezone are converted to and from absolute UTC instants. Schedules
// and blocked dates are wall-clock; everything stored or compared is
// UTC. Keeping the conversion in one spot is what makes DST handling
// consistent across the generator, the validator and the handlers.

const DateLayout = "2006-01-02"

var ErrUnknownTimezone = errs.New("unknown timezone")

// Load resolves an IANA timezone name. No silent fallback: a schedule
// with a bad timezone must fail loudly, not drift to server-local time.
func Load(name string) (*time.Location, error) {
	if name == "" {
		return nil, ErrUnknownTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errs.Mark(err, ErrUnknownTimezone)
	}
	return loc, nil
}

// AtMinute returns the UTC instant of the given local calendar date plus
// minuteOfDay wall-clock minutes in loc. time.Date normalizes through
// DST transitions on that specific date, so a window crossing a
// spring-forward gap lands on the actually observable local time rather
// than a fixed-offset fiction.
func AtMinute(year int, month time.Month, day, minuteOfDay int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 0, minuteOfDay, 0, 0, loc).UTC()
}

// DateOf reports the local calendar date of an instant in loc, in
// YYYY-MM-DD form. Blocked-date comparison goes through here with the
// timezone the block was stored against.
func DateOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// ParseDate validates a YYYY-MM-DD string and returns its components.
func ParseDate(s string) (year int, month time.Month, day int, err error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return 0, 0, 0, errs.Wrap(err, "invalid calendar date")
	}
	return t.Year(), t.Month(), t.Day(), nil
}

// StartOfDay returns the UTC instant at which the local calendar date of
// t begins in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc).UTC()
}

// NextDay advances an instant to the start of the following local
// calendar day in loc. AddDate works in wall-clock terms, so a 23h or
// 25h DST day advances correctly.
func NextDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1).UTC()
}

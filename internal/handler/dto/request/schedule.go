package request

import (
	"time"
)

type WindowRequest struct {
	// Minutes from local midnight, e.g. 540 for 09:00.
	StartMinute int `json:"start_minute" binding:"min=0,max=1440"`
	EndMinute   int `json:"end_minute" binding:"min=0,max=1440"`
}

type UpsertScheduleRequest struct {
	Timezone string `json:"timezone" binding:"required"`
	// Keys are lowercase weekday names: "monday" .. "sunday".
	Weekly            map[string][]WindowRequest `json:"weekly" binding:"required"`
	BeforeBufferMin   int                        `json:"before_buffer_min" binding:"min=0"`
	AfterBufferMin    int                        `json:"after_buffer_min" binding:"min=0"`
	MinimumNoticeMin  int                        `json:"minimum_notice_min" binding:"min=0"`
	IntervalMin       int                        `json:"interval_min" binding:"required,min=1"`
	BookingWindowDays int                        `json:"booking_window_days" binding:"required,min=1"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// WeekdayByName resolves a request key to a weekday; ok is false for
// anything that is not a lowercase day name.
func WeekdayByName(name string) (time.Weekday, bool) {
	day, ok := weekdayNames[name]
	return day, ok
}

type AddBlockedDateRequest struct {
	// Local calendar date, YYYY-MM-DD.
	Date     string `json:"date" binding:"required"`
	Timezone string `json:"timezone" binding:"required"`
	Reason   string `json:"reason"`
}

package response

import (
	"time"

	"eleva-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type WindowResponse struct {
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`
}

type ScheduleResponse struct {
	Timezone          string                      `json:"timezone"`
	Weekly            map[string][]WindowResponse `json:"weekly"`
	BeforeBufferMin   int                         `json:"before_buffer_min"`
	AfterBufferMin    int                         `json:"after_buffer_min"`
	MinimumNoticeMin  int                         `json:"minimum_notice_min"`
	IntervalMin       int                         `json:"time_slot_interval_min"`
	BookingWindowDays int                         `json:"booking_window_days"`
}

func NewScheduleResponse(view *queries.ScheduleView) ScheduleResponse {
	weekly := make(map[string][]WindowResponse, len(view.Weekly))
	for day := time.Sunday; day <= time.Saturday; day++ {
		windows := view.Weekly[day]
		if len(windows) == 0 {
			continue
		}
		name := dayNames[day]
		for _, w := range windows {
			weekly[name] = append(weekly[name], WindowResponse{
				StartMinute: w.StartMinute,
				EndMinute:   w.EndMinute,
			})
		}
	}
	return ScheduleResponse{
		Timezone:          view.Timezone,
		Weekly:            weekly,
		BeforeBufferMin:   view.BeforeBufferMin,
		AfterBufferMin:    view.AfterBufferMin,
		MinimumNoticeMin:  view.MinimumNoticeMin,
		IntervalMin:       view.IntervalMin,
		BookingWindowDays: view.BookingWindowDays,
	}
}

var dayNames = map[time.Weekday]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

type BlockedDateResponse struct {
	ID       uuid.UUID `json:"id"`
	Date     string    `json:"date"`
	Timezone string    `json:"timezone"`
	Reason   string    `json:"reason,omitempty"`
}

func NewBlockedDateListResponse(views []queries.BlockedDateView) []BlockedDateResponse {
	out := make([]BlockedDateResponse, 0, len(views))
	for _, v := range views {
		out = append(out, BlockedDateResponse{
			ID:       v.ID,
			Date:     v.Date,
			Timezone: v.Timezone,
			Reason:   v.Reason,
		})
	}
	return out
}

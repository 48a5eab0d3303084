package response

import (
	"time"

	"eleva-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type MeetingResponse struct {
	ID            uuid.UUID `json:"id"`
	EventID       uuid.UUID `json:"event_id"`
	GuestName     string    `json:"guest_name"`
	GuestEmail    string    `json:"guest_email"`
	GuestTimezone string    `json:"guest_timezone,omitempty"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
}

func NewMeetingListResponse(views []queries.MeetingView) []MeetingResponse {
	result := make([]MeetingResponse, 0, len(views))
	for _, v := range views {
		result = append(result, MeetingResponse{
			ID:            v.ID,
			EventID:       v.EventID,
			GuestName:     v.GuestName,
			GuestEmail:    v.GuestEmail,
			GuestTimezone: v.GuestTimezone,
			StartTime:     v.StartTime,
			EndTime:       v.EndTime,
			Status:        v.Status,
			PaymentStatus: v.PaymentStatus,
		})
	}
	return result
}

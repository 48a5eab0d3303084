package response

import (
	"time"

	"eleva-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type ReserveSlotResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
}

type ConfirmBookingResponse struct {
	MeetingID      uuid.UUID `json:"meeting_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	AlreadyExisted bool      `json:"already_existed"`
}

func NewConfirmBookingResponse(result *commands.ConfirmBookingResult) ConfirmBookingResponse {
	return ConfirmBookingResponse{
		MeetingID:      result.MeetingID,
		StartTime:      result.StartTime,
		EndTime:        result.EndTime,
		AlreadyExisted: result.AlreadyExisted,
	}
}

package request

import (
	"time"

	"github.com/google/uuid"
)

type ReserveSlotRequest struct {
	EventID    uuid.UUID `json:"event_id" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	GuestEmail string    `json:"guest_email" binding:"required,email"`
}

type ConfirmBookingRequest struct {
	EventID          uuid.UUID `json:"event_id" binding:"required"`
	StartTime        time.Time `json:"start_time" binding:"required"`
	GuestName        string    `json:"guest_name" binding:"required"`
	GuestEmail       string    `json:"guest_email" binding:"required,email"`
	GuestTimezone    string    `json:"guest_timezone"`
	PaymentReference string    `json:"payment_reference"`
}

// PaymentWebhookRequest carries the provider's settlement callback. The
// payment reference doubles as the idempotency key, so replays resolve
// to the original meeting.
type PaymentWebhookRequest struct {
	PaymentReference string    `json:"payment_reference" binding:"required"`
	EventID          uuid.UUID `json:"event_id" binding:"required"`
	StartTime        time.Time `json:"start_time" binding:"required"`
	GuestName        string    `json:"guest_name" binding:"required"`
	GuestEmail       string    `json:"guest_email" binding:"required,email"`
	GuestTimezone    string    `json:"guest_timezone"`
}

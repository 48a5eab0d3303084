package api

import (
	"net/http"

	reqdto "eleva-booking/internal/handler/dto/request"
	resdto "eleva-booking/internal/handler/dto/response"
	"eleva-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
}

func NewBookingHandler(bookingCommands commands.BookingCommands) *BookingHandler {
	return &BookingHandler{bookingCommands: bookingCommands}
}

// Reserve places a checkout hold: POST /bookings/reserve
func (h *BookingHandler) Reserve(c *gin.Context) {
	var req reqdto.ReserveSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.bookingCommands.ReserveSlot(c.Request.Context(), commands.ReserveSlotInput{
		EventID:    req.EventID,
		StartTime:  req.StartTime,
		GuestEmail: req.GuestEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.ReserveSlotResponse{ExpiresAt: result.ExpiresAt})
}

// Confirm finalizes a booking: POST /bookings/confirm
func (h *BookingHandler) Confirm(c *gin.Context) {
	var req reqdto.ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.bookingCommands.ConfirmBooking(c.Request.Context(), commands.ConfirmBookingInput{
		EventID:          req.EventID,
		StartTime:        req.StartTime,
		GuestName:        req.GuestName,
		GuestEmail:       req.GuestEmail,
		GuestTimezone:    req.GuestTimezone,
		PaymentReference: req.PaymentReference,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	c.JSON(status, resdto.NewConfirmBookingResponse(result))
}

// PaymentWebhook confirms a booking from the payment provider's
// settlement callback. Replays resolve idempotently through the payment
// reference, so the provider can retry safely.
func (h *BookingHandler) PaymentWebhook(c *gin.Context) {
	var req reqdto.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.bookingCommands.ConfirmBooking(c.Request.Context(), commands.ConfirmBookingInput{
		EventID:          req.EventID,
		StartTime:        req.StartTime,
		GuestName:        req.GuestName,
		GuestEmail:       req.GuestEmail,
		GuestTimezone:    req.GuestTimezone,
		PaymentReference: req.PaymentReference,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewConfirmBookingResponse(result))
}

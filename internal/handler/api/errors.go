package api

import (
	"errors"
	"net/http"

	"eleva-booking/internal/handler/httperr"
	"eleva-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// respondError maps usecase sentinels to HTTP statuses. Conflict-class
// errors are split: a temporary hold is retryable (409 with a hint), a
// confirmed meeting on the slot is final.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrEventNotFoundOrInactive):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Event not found or inactive", nil)
	case errors.Is(err, errs.ErrScheduleNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Schedule not found", nil)
	case errors.Is(err, errs.ErrMeetingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Meeting not found", nil)
	case errors.Is(err, errs.ErrSlotTemporarilyReserved):
		httperr.AbortWithError(c, http.StatusConflict, err, "Slot temporarily reserved, try again shortly", gin.H{"retryable": true})
	case errors.Is(err, errs.ErrSlotAlreadyBooked):
		httperr.AbortWithError(c, http.StatusConflict, err, "Slot already booked", gin.H{"retryable": false})
	case errors.Is(err, errs.ErrEventHasMeetings):
		httperr.AbortWithError(c, http.StatusConflict, err, "Event has meetings and was deactivated instead", nil)
	case errors.Is(err, errs.ErrInvalidTimeSlot):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Requested slot is not available", nil)
	case errors.Is(err, errs.ErrInvalidSchedule), errors.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	case errors.Is(err, errs.ErrUpstreamUnavailable):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Upstream service unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func bindError(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
}

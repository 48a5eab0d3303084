package api

import (
	"net/http"
	"time"

	resdto "eleva-booking/internal/handler/dto/response"
	"eleva-booking/internal/handler/httperr"
	"eleva-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityQueries: availabilityQueries}
}

// ListSlots is the public availability endpoint behind the booking
// page: GET /experts/:expert_id/events/:slug/slots?from=...&to=...
func (h *AvailabilityHandler) ListSlots(c *gin.Context) {
	expertID, err := uuid.Parse(c.Param("expert_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid expert id", nil)
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid 'from' timestamp", nil)
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid 'to' timestamp", nil)
		return
	}

	result, err := h.availabilityQueries.ListAvailableSlots(c.Request.Context(), queries.ListSlotsInput{
		ExpertID:  expertID,
		EventSlug: c.Param("slug"),
		From:      from,
		To:        to,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewAvailabilityResponse(result))
}

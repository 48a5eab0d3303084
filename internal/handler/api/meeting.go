package api

import (
	"net/http"
	"strconv"

	resdto "eleva-booking/internal/handler/dto/response"
	"eleva-booking/internal/handler/httperr"
	"eleva-booking/internal/handler/middleware"
	"eleva-booking/internal/pkg/errs"
	"eleva-booking/internal/usecase/commands"
	"eleva-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MeetingHandler struct {
	bookingCommands commands.BookingCommands
	meetingQueries  queries.MeetingQueries
}

func NewMeetingHandler(bookingCommands commands.BookingCommands, meetingQueries queries.MeetingQueries) *MeetingHandler {
	return &MeetingHandler{bookingCommands: bookingCommands, meetingQueries: meetingQueries}
}

// List: GET /me/meetings?limit=50
func (h *MeetingHandler) List(c *gin.Context) {
	expertID, ok := middleware.GetExpertID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing expert context"), "Internal server error", nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	views, err := h.meetingQueries.ListUpcomingMeetings(c.Request.Context(), expertID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewMeetingListResponse(views))
}

// Cancel: DELETE /me/meetings/:id
func (h *MeetingHandler) Cancel(c *gin.Context) {
	expertID, ok := middleware.GetExpertID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing expert context"), "Internal server error", nil)
		return
	}

	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid meeting id", nil)
		return
	}

	err = h.bookingCommands.CancelMeeting(c.Request.Context(), commands.CancelMeetingInput{
		MeetingID: meetingID,
		ExpertID:  expertID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

package api

import (
	"net/http"
	"time"

	reqdto "eleva-booking/internal/handler/dto/request"
	resdto "eleva-booking/internal/handler/dto/response"
	"eleva-booking/internal/handler/httperr"
	"eleva-booking/internal/handler/middleware"
	"eleva-booking/internal/pkg/errs"
	"eleva-booking/internal/usecase/commands"
	"eleva-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ScheduleHandler struct {
	scheduleCommands commands.ScheduleCommands
	scheduleQueries  queries.ScheduleQueries
}

func NewScheduleHandler(scheduleCommands commands.ScheduleCommands, scheduleQueries queries.ScheduleQueries) *ScheduleHandler {
	return &ScheduleHandler{scheduleCommands: scheduleCommands, scheduleQueries: scheduleQueries}
}

// Get returns the expert's schedule: GET /me/schedule
func (h *ScheduleHandler) Get(c *gin.Context) {
	expertID, ok := middleware.GetExpertID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing expert context"), "Internal server error", nil)
		return
	}

	view, err := h.scheduleQueries.GetSchedule(c.Request.Context(), expertID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewScheduleResponse(view))
}

// ListBlockedDates: GET /me/blocked-dates
func (h *ScheduleHandler) ListBlockedDates(c *gin.Context) {
	expertID, ok := middleware.GetExpertID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing expert context"), "Internal server error", nil)
		return
	}

	views, err := h.scheduleQueries.ListBlockedDates(c.Request.Context(), expertID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewBlockedDateListResponse(views))
}

// Upsert replaces the authenticated expert's schedule: PUT /me/schedule
func (h *ScheduleHandler) Upsert(c *gin.Context) {
	expertID, ok := middleware.GetExpertID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing expert context"), "Internal server error", nil)
		return
	}

	var req reqdto.UpsertScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	weekly := make(map[time.Weekday][]commands.WindowInput, len(req.Weekly))
	for name, windows := range req.Weekly {
		day, ok := reqdto.WeekdayByName(name)
		if !ok {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.New("unknown weekday"), "Unknown weekday: "+name, nil)
			return
		}
		for _, w := range windows {
			weekly[day] = append(weekly[day], commands.WindowInput{
				StartMinute: w.StartMinute,
				EndMinute:   w.EndMinute,
			})
		}
	}

	err := h.scheduleCommands.UpsertSchedule(c.Request.Context(), commands.UpsertScheduleInput{
		ExpertID:          expertID,
		Timezone:          req.Timezone,
		Weekly:            weekly,
		BeforeBufferMin:   req.BeforeBufferMin,
		AfterBufferMin:    req.AfterBufferMin,
		MinimumNoticeMin:  req.MinimumNoticeMin,
		IntervalMin:       req.IntervalMin,
		BookingWindowDays: req.BookingWindowDays,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddBlockedDate blocks one local day: POST /me/blocked-dates
func (h *ScheduleHandler) AddBlockedDate(c *gin.Context) {
	expertID, ok := middleware.GetExpertID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing expert context"), "Internal server error", nil)
		return
	}

	var req reqdto.AddBlockedDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	id, err := h.scheduleCommands.AddBlockedDate(c.Request.Context(), commands.AddBlockedDateInput{
		ExpertID: expertID,
		Date:     req.Date,
		Timezone: req.Timezone,
		Reason:   req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// RemoveBlockedDate: DELETE /me/blocked-dates/:id
func (h *ScheduleHandler) RemoveBlockedDate(c *gin.Context) {
	expertID, ok := middleware.GetExpertID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing expert context"), "Internal server error", nil)
		return
	}

	blockedDateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid blocked date id", nil)
		return
	}

	if err := h.scheduleCommands.RemoveBlockedDate(c.Request.Context(), expertID, blockedDateID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

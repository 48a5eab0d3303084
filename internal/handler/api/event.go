package api

import (
	"net/http"

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

type EventHandler struct {
	eventCommands commands.EventCommands
	eventQueries  queries.EventQueries
}

func NewEventHandler(eventCommands commands.EventCommands, eventQueries queries.EventQueries) *EventHandler {
	return &EventHandler{eventCommands: eventCommands, eventQueries: eventQueries}
}

// List: GET /me/events
func (h *EventHandler) List(c *gin.Context) {
	expertID, ok := middleware.GetExpertID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing expert context"), "Internal server error", nil)
		return
	}

	views, err := h.eventQueries.ListEvents(c.Request.Context(), expertID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewEventListResponse(views))
}

// Create: POST /me/events
func (h *EventHandler) Create(c *gin.Context) {
	expertID, ok := middleware.GetExpertID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing expert context"), "Internal server error", nil)
		return
	}

	var req reqdto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	id, err := h.eventCommands.CreateEvent(c.Request.Context(), commands.CreateEventInput{
		ExpertID:    expertID,
		Slug:        req.Slug,
		Name:        req.Name,
		DurationMin: req.DurationMin,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Update: PATCH /me/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	expertID, ok := middleware.GetExpertID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing expert context"), "Internal server error", nil)
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid event id", nil)
		return
	}

	var req reqdto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	err = h.eventCommands.UpdateEvent(c.Request.Context(), commands.UpdateEventInput{
		EventID:  eventID,
		ExpertID: expertID,
		Name:     req.Name,
		Active:   req.Active,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete: DELETE /me/events/:id. Events with meetings are deactivated
// instead; the 409 tells the dashboard which happened.
func (h *EventHandler) Delete(c *gin.Context) {
	expertID, ok := middleware.GetExpertID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing expert context"), "Internal server error", nil)
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid event id", nil)
		return
	}

	if err := h.eventCommands.DeleteEvent(c.Request.Context(), eventID, expertID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

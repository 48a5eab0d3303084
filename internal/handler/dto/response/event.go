package response

import (
	"time"

	"eleva-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type EventResponse struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	DurationMin int       `json:"duration_min"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewEventResponse(view *queries.EventView) EventResponse {
	return EventResponse{
		ID:          view.ID,
		Slug:        view.Slug,
		Name:        view.Name,
		DurationMin: view.DurationMin,
		Active:      view.Active,
		CreatedAt:   view.CreatedAt,
	}
}

func NewEventListResponse(views []queries.EventView) []EventResponse {
	result := make([]EventResponse, 0, len(views))
	for i := range views {
		result = append(result, NewEventResponse(&views[i]))
	}
	return result
}

package response

import (
	"time"

	"eleva-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type AvailabilityResponse struct {
	EventID     uuid.UUID   `json:"event_id"`
	EventName   string      `json:"event_name"`
	DurationMin int         `json:"duration_min"`
	Timezone    string      `json:"timezone"`
	Slots       []time.Time `json:"slots"`
	Degraded    bool        `json:"degraded"`
}

func NewAvailabilityResponse(result *queries.AvailabilityResult) AvailabilityResponse {
	slots := result.Slots
	if slots == nil {
		slots = []time.Time{}
	}
	return AvailabilityResponse{
		EventID:     result.EventID,
		EventName:   result.EventName,
		DurationMin: result.DurationMin,
		Timezone:    result.Timezone,
		Slots:       slots,
		Degraded:    result.Degraded,
	}
}

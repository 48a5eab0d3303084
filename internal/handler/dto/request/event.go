package request

type CreateEventRequest struct {
	Slug        string `json:"slug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	DurationMin int    `json:"duration_min" binding:"required,min=1"`
}

type UpdateEventRequest struct {
	Name   string `json:"name"`
	Active *bool  `json:"active"`
}

package components

import (
	"eleva-booking/internal/handler"
	"eleva-booking/internal/handler/api"
	"eleva-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewBookingHandler,
		api.NewScheduleHandler,
		api.NewEventHandler,
		api.NewMeetingHandler,
		middleware.NewAuthMiddleware,
		middleware.NewLogger,
	),
	fx.Invoke(handler.NewRouter),
)

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eleva-booking/internal/handler/api"
	"eleva-booking/internal/handler/middleware"
	"eleva-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	availabilityHandler *api.AvailabilityHandler,
	bookingHandler *api.BookingHandler,
	scheduleHandler *api.ScheduleHandler,
	eventHandler *api.EventHandler,
	meetingHandler *api.MeetingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, availabilityHandler, bookingHandler, scheduleHandler, eventHandler, meetingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	availabilityHandler *api.AvailabilityHandler,
	bookingHandler *api.BookingHandler,
	scheduleHandler *api.ScheduleHandler,
	eventHandler *api.EventHandler,
	meetingHandler *api.MeetingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		// Public booking-page surface: no auth, guests act by email.
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/experts/:expert_id/events/:slug/slots", Handler: availabilityHandler.ListSlots},
			{Method: http.MethodPost, Path: "/bookings/reserve", Handler: bookingHandler.Reserve},
			{Method: http.MethodPost, Path: "/bookings/confirm", Handler: bookingHandler.Confirm},
			{Method: http.MethodPost, Path: "/webhooks/payment", Handler: bookingHandler.PaymentWebhook},
		})

		// Expert dashboard surface.
		me := apiGroup.Group("/me")
		me.Use(authMiddleware.RequireExpert())
		{
			addRoutes(me, []route{
				{Method: http.MethodGet, Path: "/schedule", Handler: scheduleHandler.Get},
				{Method: http.MethodPut, Path: "/schedule", Handler: scheduleHandler.Upsert},
				{Method: http.MethodGet, Path: "/blocked-dates", Handler: scheduleHandler.ListBlockedDates},
				{Method: http.MethodPost, Path: "/blocked-dates", Handler: scheduleHandler.AddBlockedDate},
				{Method: http.MethodDelete, Path: "/blocked-dates/:id", Handler: scheduleHandler.RemoveBlockedDate},
				{Method: http.MethodGet, Path: "/events", Handler: eventHandler.List},
				{Method: http.MethodPost, Path: "/events", Handler: eventHandler.Create},
				{Method: http.MethodPatch, Path: "/events/:id", Handler: eventHandler.Update},
				{Method: http.MethodDelete, Path: "/events/:id", Handler: eventHandler.Delete},
				{Method: http.MethodGet, Path: "/meetings", Handler: meetingHandler.List},
				{Method: http.MethodDelete, Path: "/meetings/:id", Handler: meetingHandler.Cancel},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}

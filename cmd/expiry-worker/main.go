package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eleva-booking/internal/handler/middleware"
	"eleva-booking/internal/infra/calendar"
	"eleva-booking/internal/infra/db"
	"eleva-booking/internal/infra/redisclient"
	"eleva-booking/internal/infra/uow"
	"eleva-booking/internal/pkg/clock"
	"eleva-booking/internal/pkg/config"
	"eleva-booking/internal/usecase/commands"
)

// The expiry worker runs next to the API servers and periodically purges
// checkout holds whose TTL has passed. Expired holds are already treated
// as open by the booking path, so the sweep is hygiene, not correctness.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	pool, dbCleanup, err := db.Connect(cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbCleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, redisCleanup, err := redisclient.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisCleanup()

	booking := commands.NewBookingCommands(
		uow.NewPostgresUoW(pool),
		redisclient.NewSlotLock(redisClient, cfg.Booking.SlotLockTTL),
		calendar.NewDisabled(),
		clock.NewRealClock(),
		cfg.Booking,
	)

	logger.Info("expiry worker started", "interval", cfg.Booking.SweepInterval.String())
	run(ctx, logger, booking, cfg.Booking.SweepInterval)
	logger.Info("expiry worker stopped")
}

func run(ctx context.Context, logger *slog.Logger, booking commands.BookingCommands, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		sweep(ctx, logger, booking)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func sweep(ctx context.Context, logger *slog.Logger, booking commands.BookingCommands) {
	deleted, err := booking.DeleteExpiredReservations(ctx)
	if err != nil {
		logger.Error("reservation sweep failed", "error", err)
		return
	}
	if deleted > 0 {
		logger.Info("purged expired reservations", "count", deleted)
	}
}

package components

import (
	"eleva-booking/internal/infra/calendar"
	"eleva-booking/internal/infra/redisclient"
	"eleva-booking/internal/infra/uow"
	"eleva-booking/internal/pkg/config"
	"eleva-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		uow.NewPostgresUoW,
		NewSlotLocker,
		NewCalendarProvider,
	),
)

func NewSlotLocker(client *redis.Client, cfg config.BookingConfig) shared.SlotLocker {
	return redisclient.NewSlotLock(client, cfg.SlotLockTTL)
}

// NewCalendarProvider wires external busy lookups when a calendar-sync
// service is configured. Without one, availability runs on schedule and
// meetings alone and responses carry the degraded flag.
func NewCalendarProvider(cfg config.Config, client *redis.Client) shared.CalendarProvider {
	if cfg.Calendar.BaseURL == "" {
		return calendar.NewDisabled()
	}
	return calendar.NewCachedProvider(calendar.NewClient(cfg.Calendar), client, cfg.Calendar.CacheTTL)
}

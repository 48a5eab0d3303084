package bootstrap

import (
	"eleva-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		// Sub-config extractors so constructors can depend on just
		// the slice of configuration they use.
		func(cfg config.Config) config.BookingConfig { return cfg.Booking },
		func(cfg config.Config) config.JWTConfig { return cfg.JWT },
		func(cfg config.Config) config.LogConfig { return cfg.Log },
	),
)

package components

import (
	"eleva-booking/internal/pkg/clock"
	"eleva-booking/internal/usecase/commands"
	"eleva-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewScheduleCommands,
		commands.NewEventCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewScheduleQueries,
		queries.NewEventQueries,
		queries.NewMeetingQueries,
	),
)

package components

import (
	"go.uber.org/fx"

	"campsite-booking/internal/billing"
	"campsite-booking/internal/pkg/clock"
	"campsite-booking/internal/pkg/config"
	"campsite-booking/internal/usecase"
	"campsite-booking/internal/usecase/availability"
	"campsite-booking/internal/usecase/commands"
	"campsite-booking/internal/usecase/queries"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	availability.NewResolver,
	billing.NewPDFRenderer,
	func(cfg config.Config) config.BookingConfig {
		return cfg.Booking
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		commands.NewProblemCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewBookingQueries,
		queries.NewSiteQueries,
		queries.NewCustomerQueries,
		queries.NewProblemQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

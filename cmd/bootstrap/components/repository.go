package components

import (
	"go.uber.org/fx"

	"campsite-booking/internal/infra/readstore"
	"campsite-booking/internal/infra/uow"
	"campsite-booking/internal/infra/writerepo"
	"campsite-booking/internal/usecase/availability"
	"campsite-booking/internal/usecase/commands"
	"campsite-booking/internal/usecase/queries"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		uow.NewPostgresTxRunner,
		fx.Annotate(
			writerepo.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			writerepo.NewSiteRepository,
			fx.As(new(commands.SiteRepository)),
		),
		fx.Annotate(
			writerepo.NewProblemRepository,
			fx.As(new(commands.ProblemRepository)),
		),
		fx.Annotate(
			writerepo.NewAuditRepository,
			fx.As(new(commands.AuditRepository)),
		),
		fx.Annotate(
			writerepo.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		// Read stores double as the availability resolver's data sources
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
			fx.As(new(availability.OverlapReader)),
		),
		fx.Annotate(
			readstore.NewSiteReadStore,
			fx.As(new(queries.SiteReadStore)),
			fx.As(new(availability.SiteReader)),
		),
		fx.Annotate(
			readstore.NewCustomerReadStore,
			fx.As(new(queries.CustomerReadStore)),
			fx.As(new(commands.CustomerRepository)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewAuditReadStore,
			fx.As(new(queries.AuditReadStore)),
		),
		fx.Annotate(
			readstore.NewProblemReadStore,
			fx.As(new(queries.ProblemReadStore)),
		),
	),
)

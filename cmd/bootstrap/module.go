package bootstrap

import (
	"go.uber.org/fx"

	"campsite-booking/cmd/bootstrap/components"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)

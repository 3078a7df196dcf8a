package components

import (
	"go.uber.org/fx"

	"campsite-booking/internal/handler"
	"campsite-booking/internal/handler/api"
	"campsite-booking/internal/handler/middleware"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewSiteHandler,
		api.NewCustomerHandler,
		api.NewProblemHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

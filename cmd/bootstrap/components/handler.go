package components

import (
	"visit-scheduler/internal/handler"
	"visit-scheduler/internal/handler/api"
	"visit-scheduler/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSchedulingHandler,
		api.NewAvailabilityHandler,
		api.NewSweepHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

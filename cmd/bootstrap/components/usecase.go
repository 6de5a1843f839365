package components

import (
	"visit-scheduler/internal/pkg/clock"
	"visit-scheduler/internal/pkg/config"
	"visit-scheduler/internal/usecase"
	"visit-scheduler/internal/usecase/commands"
	"visit-scheduler/internal/usecase/queries"
	"visit-scheduler/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
	fx.Provide(usecase.NewSchedulingService),
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewSchedulingPolicy,
	NewSweepPolicy,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAllocator,
		commands.NewSlotMaterializer,
		commands.NewSweeper,
		commands.NewAvailabilityCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSchedulingQueries,
	),
)

func NewSchedulingPolicy(cfg config.Config) shared.SchedulingPolicy {
	return shared.SchedulingPolicy{
		HoldDuration:        cfg.Scheduling.HoldDuration,
		RequireConfirmation: cfg.Scheduling.RequireConfirmation,
		MaxHorizonDays:      cfg.Scheduling.MaxHorizonDays,
	}
}

func NewSweepPolicy(cfg config.Config) shared.SweepPolicy {
	return shared.SweepPolicy{
		ConfirmedRetention: cfg.Sweep.ConfirmedRetention,
	}
}

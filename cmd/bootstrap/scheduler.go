package bootstrap

import (
	"context"
	"log/slog"

	"visit-scheduler/internal/infra/scheduler"
	"visit-scheduler/internal/pkg/clock"
	"visit-scheduler/internal/pkg/config"
	"visit-scheduler/internal/usecase/commands"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		NewRunner,
	),
	fx.Invoke(startRunner),
)

func NewRunner(cfg config.Config, sweeper commands.Sweeper, allocator commands.Allocator, clk clock.Clock, logger *slog.Logger) (*scheduler.Runner, error) {
	return scheduler.NewRunner(
		scheduler.Schedules{
			Sweep:       cfg.Sweep.Schedule,
			HoldRelease: cfg.Sweep.HoldReleaseSchedule,
		},
		sweeper, allocator, clk, logger,
	)
}

func startRunner(lc fx.Lifecycle, cfg config.Config, runner *scheduler.Runner, logger *slog.Logger) {
	if !cfg.Sweep.Enabled {
		logger.Info("in-process sweep disabled; rely on POST /internal/sweep")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			runner.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return runner.Stop(ctx)
		},
	})
}

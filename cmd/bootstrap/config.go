package bootstrap

import (
	"log/slog"

	"visit-scheduler/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(logEffectiveConfig),
)

// logEffectiveConfig records the knobs that change booking behaviour; secrets
// are reported only as set/unset.
func logEffectiveConfig(cfg config.Config, logger *slog.Logger) {
	logger.Info("configuration loaded",
		"storage_driver", cfg.Storage.Driver,
		"hold_duration", cfg.Scheduling.HoldDuration,
		"require_confirmation", cfg.Scheduling.RequireConfirmation,
		"max_horizon_days", cfg.Scheduling.MaxHorizonDays,
		"sweep_enabled", cfg.Sweep.Enabled,
		"sweep_schedule", cfg.Sweep.Schedule,
		"confirmed_retention", cfg.Sweep.ConfirmedRetention,
		"sweep_secret_set", cfg.Sweep.Secret != "")
}

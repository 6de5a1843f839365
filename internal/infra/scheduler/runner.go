package scheduler

import (
	"context"
	"log/slog"
	"time"

	"visit-scheduler/internal/pkg/clock"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase/commands"

	"github.com/robfig/cron/v3"
)

// jobTimeout bounds one run so a stuck database cannot pile up overlapping jobs.
const jobTimeout = 10 * time.Minute

type Schedules struct {
	Sweep       string
	HoldRelease string
}

// Runner drives the background maintenance jobs in-process. Runs of the same
// job never overlap; a panic in one run is logged and the schedule continues.
type Runner struct {
	cron      *cron.Cron
	sweeper   commands.Sweeper
	allocator commands.Allocator
	clock     clock.Clock
	logger    *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewRunner(schedules Schedules, sweeper commands.Sweeper, allocator commands.Allocator, clock clock.Clock, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cronLogger := &slogAdapter{logger: logger.With("component", "cron")}
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(
			cron.Recover(cronLogger),
			cron.SkipIfStillRunning(cronLogger),
		),
	)

	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{
		cron:      c,
		sweeper:   sweeper,
		allocator: allocator,
		clock:     clock,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}

	if schedules.Sweep != "" {
		if _, err := c.AddFunc(schedules.Sweep, r.runSweep); err != nil {
			cancel()
			return nil, errs.Wrapf(err, "invalid sweep schedule %q", schedules.Sweep)
		}
	}
	if schedules.HoldRelease != "" {
		if _, err := c.AddFunc(schedules.HoldRelease, r.runHoldRelease); err != nil {
			cancel()
			return nil, errs.Wrapf(err, "invalid hold release schedule %q", schedules.HoldRelease)
		}
	}
	return r, nil
}

func (r *Runner) Start() {
	r.cron.Start()
	r.logger.Info("background jobs scheduled", "entries", len(r.cron.Entries()))
}

// Stop cancels in-flight runs and waits for them to return or ctx to expire.
func (r *Runner) Stop(ctx context.Context) error {
	r.cancel()
	done := r.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) runSweep() {
	ctx, cancel := context.WithTimeout(r.ctx, jobTimeout)
	defer cancel()

	started := time.Now()
	result, err := r.sweeper.Sweep(ctx, r.clock.Now())
	attrs := []any{
		"released_holds", result.ReleasedHolds,
		"expired_slots", result.ExpiredSlots,
		"removed_slots", result.Removed(),
		"failed_properties", result.FailedProperties,
		"duration", time.Since(started),
	}
	if err != nil {
		r.logger.Error("scheduled sweep finished with errors", append(attrs, "error", err.Error())...)
		return
	}
	r.logger.Info("scheduled sweep finished", attrs...)
}

func (r *Runner) runHoldRelease() {
	ctx, cancel := context.WithTimeout(r.ctx, jobTimeout)
	defer cancel()

	released, err := r.allocator.ReleaseExpiredHolds(ctx, r.clock.Now())
	if err != nil {
		r.logger.Error("scheduled hold release failed", "released", released, "error", err.Error())
		return
	}
	if released > 0 {
		r.logger.Info("expired holds released", "released", released)
	}
}

// slogAdapter satisfies cron.Logger.
type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Info(msg string, keysAndValues ...any) {
	a.logger.Debug(msg, keysAndValues...)
}

func (a *slogAdapter) Error(err error, msg string, keysAndValues ...any) {
	a.logger.Error(msg, append(keysAndValues, "error", err)...)
}

package commands

//go:generate mockgen -source=sweeper.go -destination=../../../tests/mock/commands/sweeper.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type SweepResult struct {
	ReleasedHolds    int   `json:"released_holds"`
	ExpiredSlots     int64 `json:"expired_slots"`
	DeletedSlots     int64 `json:"deleted_slots"`
	ArchivedSlots    int64 `json:"archived_slots"`
	FailedProperties int   `json:"failed_properties"`
}

// Removed is the number of slot rows the sweep deleted.
func (r SweepResult) Removed() int64 {
	return r.DeletedSlots + r.ArchivedSlots
}

type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (SweepResult, error)
}

type sweeperImpl struct {
	uow       shared.UnitOfWork
	allocator Allocator
	policy    shared.SweepPolicy
	logger    *slog.Logger
}

func NewSweeper(uow shared.UnitOfWork, allocator Allocator, policy shared.SweepPolicy, logger *slog.Logger) Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &sweeperImpl{
		uow:       uow,
		allocator: allocator,
		policy:    policy,
		logger:    logger,
	}
}

// Sweep releases expired holds first so their slots are judged in their
// released state, then cleans each property in its own locked transaction.
// Failures are collected and returned; the next run retries them.
func (s *sweeperImpl) Sweep(ctx context.Context, now time.Time) (SweepResult, error) {
	var result SweepResult
	var failures error

	released, err := s.allocator.ReleaseExpiredHolds(ctx, now)
	result.ReleasedHolds = released
	if err != nil {
		s.logger.Error("sweep: releasing expired holds failed", "error", err.Error())
		failures = errs.Combine(failures, err)
	}

	var cutoff *time.Time
	if s.policy.ConfirmedRetention > 0 {
		c := now.Add(-s.policy.ConfirmedRetention)
		cutoff = &c
	}

	var properties []uuid.UUID
	err = s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		properties, err = tx.Slots().PropertiesNeedingSweep(ctx, now, cutoff)
		return err
	})
	if err != nil {
		return result, errs.Combine(failures, shared.AsStorageErr(err))
	}

	for _, propertyID := range properties {
		if ctxErr := ctx.Err(); ctxErr != nil {
			failures = errs.Combine(failures, ctxErr)
			break
		}

		r, err := s.sweepProperty(ctx, propertyID, now, cutoff)
		if err != nil {
			result.FailedProperties++
			s.logger.Error("sweep: property failed",
				"property_id", propertyID,
				"error", err.Error())
			failures = errs.Combine(failures, errs.Wrapf(err, "sweep property %s", propertyID))
			continue
		}
		result.ReleasedHolds += r.ReleasedHolds
		result.ExpiredSlots += r.ExpiredSlots
		result.DeletedSlots += r.DeletedSlots
		result.ArchivedSlots += r.ArchivedSlots
	}

	s.logger.Info("sweep finished",
		"released_holds", result.ReleasedHolds,
		"expired_slots", result.ExpiredSlots,
		"deleted_slots", result.DeletedSlots,
		"archived_slots", result.ArchivedSlots,
		"failed_properties", result.FailedProperties)

	return result, shared.AsStorageErr(failures)
}

func (s *sweeperImpl) sweepProperty(ctx context.Context, propertyID uuid.UUID, now time.Time, cutoff *time.Time) (SweepResult, error) {
	var r SweepResult
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r = SweepResult{}
		if err := tx.LockProperty(ctx, propertyID); err != nil {
			return err
		}

		holds, err := tx.Bookings().ExpirePendingOnStartedSlots(ctx, propertyID, now)
		if err != nil {
			return err
		}
		r.ReleasedHolds = int(holds)

		if r.ExpiredSlots, err = tx.Slots().ExpireStarted(ctx, propertyID, now); err != nil {
			return err
		}
		if r.DeletedSlots, err = tx.Slots().DeleteStarted(ctx, propertyID, now); err != nil {
			return err
		}
		if cutoff != nil {
			if r.ArchivedSlots, err = tx.Slots().DeleteConfirmedEndedBefore(ctx, propertyID, *cutoff); err != nil {
				return err
			}
		}
		return nil
	})
	return r, err
}

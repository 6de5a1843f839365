package commands

//go:generate mockgen -source=allocator.go -destination=../../../tests/mock/commands/allocator.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"visit-scheduler/internal/domain/booking"
	"visit-scheduler/internal/domain/slot"
	"visit-scheduler/internal/infra"
	"visit-scheduler/internal/pkg/clock"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

const releaseBatchSize = 100

// Allocator owns every slot and booking status transition. Each operation is
// one transaction holding the property lock; every status change is checked
// against the domain state machine and persisted as a compare-and-set, so a
// concurrent writer makes it fail instead of being overwritten.
type Allocator interface {
	Reserve(ctx context.Context, slotID, visitorID uuid.UUID) (*booking.Booking, error)
	Confirm(ctx context.Context, bookingID uuid.UUID) (*booking.Booking, error)
	Cancel(ctx context.Context, bookingID uuid.UUID) (*booking.Booking, error)
	ReleaseExpiredHolds(ctx context.Context, now time.Time) (int, error)
	ReleaseExpiredHoldsForProperty(ctx context.Context, propertyID uuid.UUID, now time.Time) (int, error)
}

type allocatorImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	policy shared.SchedulingPolicy
	logger *slog.Logger
}

func NewAllocator(uow shared.UnitOfWork, clock clock.Clock, policy shared.SchedulingPolicy, logger *slog.Logger) Allocator {
	if logger == nil {
		logger = slog.Default()
	}
	return &allocatorImpl{
		uow:    uow,
		clock:  clock,
		policy: policy,
		logger: logger,
	}
}

func (a *allocatorImpl) Reserve(ctx context.Context, slotID, visitorID uuid.UUID) (*booking.Booking, error) {
	now := a.clock.Now()

	var result *booking.Booking
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := lockSlot(ctx, tx, slotID)
		if err != nil {
			return err
		}
		if !s.IsBookable(now) {
			return errs.Wrapf(ErrSlotNotBookable, "slot %s is %s", s.ID(), s.Status())
		}

		existing, err := tx.Bookings().FindLiveByVisitorAndProperty(ctx, visitorID, s.PropertyID())
		if err != nil {
			return err
		}
		if existing != nil {
			return shared.NewDuplicateBookingError(existing, nil)
		}

		b, err := booking.NewPendingBooking(s.ID(), visitorID, s.PropertyID(), now, a.policy.HoldDuration)
		if err != nil {
			return err
		}

		ok, err := moveSlot(ctx, tx, s, slot.StatusReserved, now)
		if err != nil {
			return err
		}
		if !ok {
			return ErrSlotTaken
		}
		if err := tx.Bookings().Insert(ctx, b); err != nil {
			return writeErr(err)
		}

		if !a.policy.RequireConfirmation {
			if err := a.confirmInTx(ctx, tx, b, s, now); err != nil {
				return err
			}
		}

		result = b
		return nil
	})
	if err != nil {
		return nil, a.enrichDuplicate(ctx, visitorID, slotID, shared.AsStorageErr(err))
	}

	a.logger.Info("slot reserved",
		"booking_id", result.ID(),
		"slot_id", slotID,
		"visitor_id", visitorID,
		"status", result.Status())
	return result, nil
}

// enrichDuplicate fills in the existing booking when the conflict was only
// caught by the store's unique index.
func (a *allocatorImpl) enrichDuplicate(ctx context.Context, visitorID, slotID uuid.UUID, err error) error {
	var dup *shared.DuplicateBookingError
	if !errs.As(err, &dup) || dup.Existing != nil {
		return err
	}

	lookupErr := a.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Slots().FindByID(ctx, slotID)
		if err != nil {
			return err
		}
		existing, err := tx.Bookings().FindLiveByVisitorAndProperty(ctx, visitorID, s.PropertyID())
		if err != nil {
			return err
		}
		dup.Existing = existing
		return nil
	})
	if lookupErr != nil {
		a.logger.Warn("failed to load existing booking", "visitor_id", visitorID, "error", lookupErr.Error())
	}
	return err
}

func (a *allocatorImpl) Confirm(ctx context.Context, bookingID uuid.UUID) (*booking.Booking, error) {
	now := a.clock.Now()

	var result *booking.Booking
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if err := a.confirmInTx(ctx, tx, b, nil, now); err != nil {
			return err
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, shared.AsStorageErr(err)
	}

	a.logger.Info("booking confirmed", "booking_id", bookingID, "slot_id", result.SlotID())
	return result, nil
}

// confirmInTx expects the property lock to be held. held is the booking's
// slot when the caller already has it; nil means read it here.
func (a *allocatorImpl) confirmInTx(ctx context.Context, tx shared.Tx, b *booking.Booking, held *slot.VisitSlot, now time.Time) error {
	if err := b.Confirm(now); err != nil {
		return err
	}

	ok, err := tx.Bookings().CompareAndSetStatus(ctx, b.ID(), booking.StatusPending, booking.StatusConfirmed, now)
	if err != nil {
		return writeErr(err)
	}
	if !ok {
		return ErrBookingChanged
	}

	if held == nil {
		held, err = tx.Slots().FindByID(ctx, b.SlotID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSlotNotReserved
			}
			return err
		}
	}
	if held.Status() != slot.StatusReserved {
		return errs.Wrapf(ErrSlotNotReserved, "slot %s is %s", held.ID(), held.Status())
	}
	ok, err = moveSlot(ctx, tx, held, slot.StatusConfirmed, now)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSlotNotReserved
	}
	return nil
}

func (a *allocatorImpl) Cancel(ctx context.Context, bookingID uuid.UUID) (*booking.Booking, error) {
	now := a.clock.Now()

	var result *booking.Booking
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		prev := b.Status()
		if err := b.Cancel(now); err != nil {
			return err
		}

		ok, err := tx.Bookings().CompareAndSetStatus(ctx, b.ID(), prev, booking.StatusCancelled, now)
		if err != nil {
			return writeErr(err)
		}
		if !ok {
			return ErrBookingChanged
		}

		heldAs := slot.StatusReserved
		if prev == booking.StatusConfirmed {
			heldAs = slot.StatusConfirmed
		}
		if err := a.releaseSlot(ctx, tx, b.SlotID(), heldAs, now); err != nil {
			return err
		}

		result = b
		return nil
	})
	if err != nil {
		return nil, shared.AsStorageErr(err)
	}

	a.logger.Info("booking cancelled", "booking_id", bookingID, "slot_id", result.SlotID())
	return result, nil
}

// releaseSlot hands the slot back after its booking ended. A slot that is
// already gone or no longer held is left alone.
func (a *allocatorImpl) releaseSlot(ctx context.Context, tx shared.Tx, slotID uuid.UUID, heldAs slot.Status, now time.Time) error {
	s, err := tx.Slots().FindByID(ctx, slotID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		return err
	}

	actual := s.Status()
	ok := false
	if actual == heldAs {
		if ok, err = moveSlot(ctx, tx, s, s.ReleaseTarget(now), now); err != nil {
			return err
		}
	}
	if !ok {
		a.logger.Warn("slot was not in the expected state on release",
			"slot_id", s.ID(),
			"expected", heldAs,
			"actual", actual)
	}
	return nil
}

func (a *allocatorImpl) ReleaseExpiredHolds(ctx context.Context, now time.Time) (int, error) {
	return a.releaseExpired(ctx, now, nil)
}

func (a *allocatorImpl) ReleaseExpiredHoldsForProperty(ctx context.Context, propertyID uuid.UUID, now time.Time) (int, error) {
	return a.releaseExpired(ctx, now, &propertyID)
}

// releaseExpired works in batches and gives every hold its own transaction,
// so one failure never blocks the rest.
func (a *allocatorImpl) releaseExpired(ctx context.Context, now time.Time, propertyID *uuid.UUID) (int, error) {
	released := 0
	var failures error

	for {
		var batch []*booking.Booking
		err := a.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			batch, err = tx.Bookings().ListExpiredHolds(ctx, now, propertyID, releaseBatchSize)
			return err
		})
		if err != nil {
			return released, errs.Combine(failures, shared.AsStorageErr(err))
		}
		if len(batch) == 0 {
			break
		}

		progressed := 0
		for _, b := range batch {
			ok, err := a.releaseOne(ctx, b.ID(), now)
			if err != nil {
				a.logger.Error("failed to release expired hold",
					"booking_id", b.ID(),
					"error", err.Error())
				failures = errs.Combine(failures, errs.Wrapf(err, "release booking %s", b.ID()))
				continue
			}
			if ok {
				released++
				progressed++
			}
		}

		if len(batch) < releaseBatchSize || progressed == 0 {
			break
		}
	}

	if released > 0 {
		a.logger.Info("expired holds released", "count", released)
	}
	return released, shared.AsStorageErr(failures)
}

func (a *allocatorImpl) releaseOne(ctx context.Context, bookingID uuid.UUID, now time.Time) (bool, error) {
	released := false
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		released = false
		b, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return err
		}
		// Confirmed or cancelled in the meantime
		if err := b.Expire(now); err != nil {
			return nil
		}

		ok, err := tx.Bookings().CompareAndSetStatus(ctx, b.ID(), booking.StatusPending, booking.StatusExpired, now)
		if err != nil {
			return writeErr(err)
		}
		if !ok {
			return nil
		}
		if err := a.releaseSlot(ctx, tx, b.SlotID(), slot.StatusReserved, now); err != nil {
			return err
		}
		released = true
		return nil
	})
	return released, err
}

// lockSlot takes the lock of the slot's property and reads the slot again
// under it, so the caller decides on the latest committed status.
func lockSlot(ctx context.Context, tx shared.Tx, slotID uuid.UUID) (*slot.VisitSlot, error) {
	s, err := tx.Slots().FindByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if err := tx.LockProperty(ctx, s.PropertyID()); err != nil {
		return nil, err
	}
	return tx.Slots().FindByID(ctx, slotID)
}

func lockBooking(ctx context.Context, tx shared.Tx, bookingID uuid.UUID) (*booking.Booking, error) {
	b, err := tx.Bookings().FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := tx.LockProperty(ctx, b.PropertyID()); err != nil {
		return nil, err
	}
	return tx.Bookings().FindByID(ctx, bookingID)
}

// moveSlot applies next through the slot state machine and persists it as a
// compare-and-set against the status s was read with. false means another
// writer changed the slot first.
func moveSlot(ctx context.Context, tx shared.Tx, s *slot.VisitSlot, next slot.Status, now time.Time) (bool, error) {
	prev := s.Status()
	if err := s.TransitionTo(next, now); err != nil {
		return false, err
	}
	ok, err := tx.Slots().CompareAndSetStatus(ctx, s.ID(), prev, next, now)
	if err != nil {
		return false, writeErr(err)
	}
	return ok, nil
}

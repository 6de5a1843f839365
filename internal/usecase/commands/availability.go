package commands

//go:generate mockgen -source=availability.go -destination=../../../tests/mock/commands/availability.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"visit-scheduler/internal/domain/availability"
	"visit-scheduler/internal/domain/property"
	"visit-scheduler/internal/domain/slot"
	"visit-scheduler/internal/infra"
	"visit-scheduler/internal/pkg/clock"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

// AvailabilityCommands is the owner-facing input boundary: recurring patterns
// and one-off slots.
type AvailabilityCommands interface {
	CreatePattern(ctx context.Context, actor uuid.UUID, spec availability.PatternSpec) (*availability.Pattern, error)
	DeletePattern(ctx context.Context, actor, propertyID, patternID uuid.UUID) error
	AddAdHocSlot(ctx context.Context, actor, propertyID uuid.UUID, startAt, endAt time.Time) (*slot.VisitSlot, error)
	WithdrawSlot(ctx context.Context, actor, propertyID, slotID uuid.UUID) error
}

type availabilityCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewAvailabilityCommands(uow shared.UnitOfWork, clock clock.Clock, logger *slog.Logger) AvailabilityCommands {
	if logger == nil {
		logger = slog.Default()
	}
	return &availabilityCommandsImpl{
		uow:    uow,
		clock:  clock,
		logger: logger,
	}
}

func (c *availabilityCommandsImpl) CreatePattern(ctx context.Context, actor uuid.UUID, spec availability.PatternSpec) (*availability.Pattern, error) {
	pattern, err := availability.NewPattern(spec, c.clock.Now())
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := requireOwner(ctx, tx, spec.PropertyID, actor); err != nil {
			return err
		}
		return tx.Patterns().Create(ctx, pattern)
	})
	if err != nil {
		return nil, shared.AsStorageErr(err)
	}

	c.logger.Info("availability pattern created",
		"pattern_id", pattern.ID(),
		"property_id", pattern.PropertyID(),
		"weekday", pattern.Weekday().String())
	return pattern, nil
}

func (c *availabilityCommandsImpl) DeletePattern(ctx context.Context, actor, propertyID, patternID uuid.UUID) error {
	now := c.clock.Now()

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := requireOwner(ctx, tx, propertyID, actor); err != nil {
			return err
		}
		p, err := tx.Patterns().FindByID(ctx, patternID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPatternNotFound
			}
			return err
		}
		if p.PropertyID() != propertyID {
			return ErrPatternNotFound
		}

		ok, err := tx.Patterns().MarkDeleted(ctx, patternID, now)
		if err != nil {
			return err
		}
		if !ok {
			return ErrPatternGone
		}
		return nil
	})
	if err != nil {
		return shared.AsStorageErr(err)
	}

	c.logger.Info("availability pattern deleted", "pattern_id", patternID, "property_id", propertyID)
	return nil
}

func (c *availabilityCommandsImpl) AddAdHocSlot(ctx context.Context, actor, propertyID uuid.UUID, startAt, endAt time.Time) (*slot.VisitSlot, error) {
	s, err := slot.NewAdHocSlot(propertyID, startAt, endAt, c.clock.Now())
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := requireOwner(ctx, tx, propertyID, actor); err != nil {
			return err
		}
		// Same lock as materialization so the overlap check cannot race it
		if err := tx.LockProperty(ctx, propertyID); err != nil {
			return err
		}

		overlap, err := tx.Slots().HasOverlap(ctx, propertyID, s.Interval(), uuid.Nil,
			slot.StatusOpen, slot.StatusReserved, slot.StatusConfirmed)
		if err != nil {
			return err
		}
		if overlap {
			return ErrSlotOverlaps
		}
		return writeErr(tx.Slots().Insert(ctx, s))
	})
	if err != nil {
		return nil, shared.AsStorageErr(err)
	}

	c.logger.Info("ad-hoc slot added", "slot_id", s.ID(), "property_id", propertyID)
	return s, nil
}

func (c *availabilityCommandsImpl) WithdrawSlot(ctx context.Context, actor, propertyID, slotID uuid.UUID) error {
	now := c.clock.Now()

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := requireOwner(ctx, tx, propertyID, actor); err != nil {
			return err
		}
		if err := tx.LockProperty(ctx, propertyID); err != nil {
			return err
		}
		s, err := tx.Slots().FindByID(ctx, slotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSlotNotFound
			}
			return err
		}
		if s.PropertyID() != propertyID {
			return ErrSlotNotFound
		}

		if s.Status() != slot.StatusOpen {
			return errs.Wrapf(ErrSlotNotOpen, "slot %s is %s", slotID, s.Status())
		}
		ok, err := moveSlot(ctx, tx, s, slot.StatusCancelled, now)
		if err != nil {
			return err
		}
		if !ok {
			return ErrSlotNotOpen
		}
		return nil
	})
	if err != nil {
		return shared.AsStorageErr(err)
	}

	c.logger.Info("slot withdrawn", "slot_id", slotID, "property_id", propertyID)
	return nil
}

func requireOwner(ctx context.Context, tx shared.Tx, propertyID, actor uuid.UUID) (*property.Property, error) {
	prop, err := tx.Properties().FindByID(ctx, propertyID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPropertyNotManaged
		}
		return nil, err
	}
	if !prop.IsOwnedBy(actor) {
		return nil, ErrNotPropertyOwner
	}
	return prop, nil
}

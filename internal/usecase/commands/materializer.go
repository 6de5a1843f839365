package commands

import (
	"context"
	"log/slog"
	"slices"

	"visit-scheduler/internal/domain/slot"
	"visit-scheduler/internal/pkg/clock"
	"visit-scheduler/internal/usecase/shared"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// SlotMaterializer persists the slots the expander derives for a range.
type SlotMaterializer interface {
	Materialize(ctx context.Context, propertyID uuid.UUID, from, to civil.Date) (int, error)
}

type slotMaterializerImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	policy shared.SchedulingPolicy
	logger *slog.Logger
}

func NewSlotMaterializer(uow shared.UnitOfWork, clock clock.Clock, policy shared.SchedulingPolicy, logger *slog.Logger) SlotMaterializer {
	if logger == nil {
		logger = slog.Default()
	}
	return &slotMaterializerImpl{
		uow:    uow,
		clock:  clock,
		policy: policy,
		logger: logger,
	}
}

// Materialize holds the property lock while it snapshots, expands and
// inserts, so two callers expanding the same property never interleave.
// Inserts skip starts that already exist, which keeps repeated calls idempotent.
func (m *slotMaterializerImpl) Materialize(ctx context.Context, propertyID uuid.UUID, from, to civil.Date) (int, error) {
	// Checked up front so the answer does not depend on whether patterns exist
	if err := slot.ValidateRange(from, to, m.policy.MaxHorizonDays); err != nil {
		return 0, err
	}
	now := m.clock.Now()

	inserted := 0
	err := m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inserted = 0
		prop, err := tx.Properties().FindByID(ctx, propertyID)
		if err != nil {
			return err
		}
		if err := tx.LockProperty(ctx, propertyID); err != nil {
			return err
		}

		patterns, err := tx.Patterns().ListByProperty(ctx, propertyID, false)
		if err != nil {
			return err
		}
		if len(patterns) == 0 {
			return nil
		}

		loc := prop.Location()
		lo, hi := slot.SnapshotBounds(from, to, loc)
		existing, err := tx.Slots().ListByPropertyBetween(ctx, propertyID, lo, hi)
		if err != nil {
			return err
		}

		seq, err := slot.Expand(slot.ExpandInput{
			PropertyID:     propertyID,
			Patterns:       patterns,
			Existing:       existing,
			From:           from,
			To:             to,
			Location:       loc,
			Now:            now,
			MaxHorizonDays: m.policy.MaxHorizonDays,
		})
		if err != nil {
			return err
		}

		fresh := slices.Collect(seq)
		if len(fresh) == 0 {
			return nil
		}
		inserted, err = tx.Slots().InsertIfAbsent(ctx, fresh)
		return writeErr(err)
	})
	if err != nil {
		return 0, shared.AsStorageErr(err)
	}

	if inserted > 0 {
		m.logger.Info("slots materialized",
			"property_id", propertyID,
			"from", from.String(),
			"to", to.String(),
			"count", inserted)
	}
	return inserted, nil
}

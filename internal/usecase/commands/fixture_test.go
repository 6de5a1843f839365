//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"visit-scheduler/internal/domain/booking"
	"visit-scheduler/internal/domain/slot"
	"visit-scheduler/internal/infra/memstore"
	"visit-scheduler/internal/pkg/clock"
	"visit-scheduler/internal/usecase/shared"
	"visit-scheduler/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fixture is a single UTC property in an in-memory store, with the clock at
// Monday 2025-01-06 08:00.
type fixture struct {
	t          *testing.T
	ctx        context.Context
	store      *memstore.Store
	clock      *clock.MockClock
	logger     *slog.Logger
	propertyID uuid.UUID
	ownerID    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		t:          t,
		ctx:        context.Background(),
		store:      memstore.New(time.UTC),
		clock:      clock.NewMockClock(time.Date(2025, time.January, 6, 8, 0, 0, 0, time.UTC)),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		propertyID: uuid.New(),
		ownerID:    uuid.New(),
	}
	f.store.PutProperty(f.propertyID, f.ownerID, "UTC")
	return f
}

func (f *fixture) policy(requireConfirmation bool) shared.SchedulingPolicy {
	return shared.SchedulingPolicy{
		HoldDuration:        15 * time.Minute,
		RequireConfirmation: requireConfirmation,
		MaxHorizonDays:      90,
	}
}

func (f *fixture) seedSlot(start time.Time, d time.Duration, status slot.Status) *slot.VisitSlot {
	f.t.Helper()
	vs := builder.NewSlotBuilder().WithProperty(f.propertyID).At(start, d).WithStatus(status).BuildDomain()
	require.NoError(f.t, f.store.Within(f.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Slots().Insert(ctx, vs)
	}))
	return vs
}

func (f *fixture) seedBooking(b *booking.Booking) {
	f.t.Helper()
	require.NoError(f.t, f.store.Within(f.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Insert(ctx, b)
	}))
}

func (f *fixture) slot(id uuid.UUID) *slot.VisitSlot {
	f.t.Helper()
	var found *slot.VisitSlot
	require.NoError(f.t, f.store.WithinReadOnly(f.ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		found, err = tx.Slots().FindByID(ctx, id)
		return err
	}))
	return found
}

func (f *fixture) booking(id uuid.UUID) *booking.Booking {
	f.t.Helper()
	var found *booking.Booking
	require.NoError(f.t, f.store.WithinReadOnly(f.ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		found, err = tx.Bookings().FindByID(ctx, id)
		return err
	}))
	return found
}

func (f *fixture) slotsOn(day time.Time) []*slot.VisitSlot {
	f.t.Helper()
	var slots []*slot.VisitSlot
	require.NoError(f.t, f.store.WithinReadOnly(f.ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		slots, err = tx.Slots().ListByPropertyBetween(ctx, f.propertyID, day, day.Add(24*time.Hour))
		return err
	}))
	return slots
}

func monday(hour, minute int) time.Time {
	return time.Date(2025, time.January, 6, hour, minute, 0, 0, time.UTC)
}

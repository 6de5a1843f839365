//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"visit-scheduler/internal/domain/booking"
	"visit-scheduler/internal/domain/slot"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase/commands"
	"visit-scheduler/internal/usecase/shared"
	"visit-scheduler/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sweepScene struct {
	open      *slot.VisitSlot
	reserved  *slot.VisitSlot
	hold      *booking.Booking
	confirmed *slot.VisitSlot
	upcoming  *slot.VisitSlot
}

// newSweepScene seeds, relative to a sweep at Monday 12:00: a started open
// slot, a started reserved slot whose hold is still running, a confirmed
// visit from two days earlier and an upcoming open slot.
func newSweepScene(f *fixture) sweepScene {
	var sc sweepScene
	sc.open = f.seedSlot(monday(9, 0), time.Hour, slot.StatusOpen)
	sc.reserved = f.seedSlot(monday(11, 0), time.Hour, slot.StatusReserved)
	sc.hold = builder.NewBookingBuilder().ForSlot(sc.reserved).With(func(b *builder.BookingBuilder) {
		b.CreatedAt = monday(10, 30)
		b.Hold = 2 * time.Hour
	}).BuildDomain()
	f.seedBooking(sc.hold)
	sc.confirmed = f.seedSlot(monday(9, 0).AddDate(0, 0, -2), time.Hour, slot.StatusConfirmed)
	sc.upcoming = f.seedSlot(monday(9, 0).AddDate(0, 0, 1), time.Hour, slot.StatusOpen)
	return sc
}

func (f *fixture) slotExists(vs *slot.VisitSlot) bool {
	f.t.Helper()
	err := f.store.WithinReadOnly(f.ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Slots().FindByID(ctx, vs.ID())
		return err
	})
	if err != nil {
		require.True(f.t, errs.Is(err, errs.ErrNotFound), err)
		return false
	}
	return true
}

func TestSweeper_Sweep(t *testing.T) {
	now := monday(12, 0)

	t.Run("with confirmed retention", func(t *testing.T) {
		f := newFixture(t)
		sc := newSweepScene(f)
		alloc := commands.NewAllocator(f.store, f.clock, f.policy(true), f.logger)
		sweeper := commands.NewSweeper(f.store, alloc, shared.SweepPolicy{ConfirmedRetention: 24 * time.Hour}, f.logger)

		result, err := sweeper.Sweep(f.ctx, now)

		require.NoError(t, err)
		assert.Equal(t, commands.SweepResult{
			ReleasedHolds: 1,
			ExpiredSlots:  2,
			DeletedSlots:  2,
			ArchivedSlots: 1,
		}, result)
		assert.Equal(t, int64(3), result.Removed())
		assert.False(t, f.slotExists(sc.open))
		assert.False(t, f.slotExists(sc.reserved))
		assert.False(t, f.slotExists(sc.confirmed))
		assert.True(t, f.slotExists(sc.upcoming))
	})

	t.Run("zero retention keeps confirmed visits", func(t *testing.T) {
		f := newFixture(t)
		sc := newSweepScene(f)
		alloc := commands.NewAllocator(f.store, f.clock, f.policy(true), f.logger)
		sweeper := commands.NewSweeper(f.store, alloc, shared.SweepPolicy{}, f.logger)

		result, err := sweeper.Sweep(f.ctx, now)

		require.NoError(t, err)
		assert.Zero(t, result.ArchivedSlots)
		assert.True(t, f.slotExists(sc.confirmed))
		assert.Equal(t, slot.StatusConfirmed, f.slot(sc.confirmed.ID()).Status())
	})

	t.Run("lapsed holds are released before slots are judged", func(t *testing.T) {
		f := newFixture(t)
		vs := f.seedSlot(monday(14, 0), time.Hour, slot.StatusReserved)
		hold := builder.NewBookingBuilder().ForSlot(vs).With(func(b *builder.BookingBuilder) {
			b.CreatedAt = monday(11, 0)
		}).BuildDomain()
		f.seedBooking(hold)
		alloc := commands.NewAllocator(f.store, f.clock, f.policy(true), f.logger)
		sweeper := commands.NewSweeper(f.store, alloc, shared.SweepPolicy{}, f.logger)

		result, err := sweeper.Sweep(f.ctx, now)

		require.NoError(t, err)
		assert.Equal(t, 1, result.ReleasedHolds)
		assert.Equal(t, booking.StatusExpired, f.booking(hold.ID()).Status())
		assert.Equal(t, slot.StatusOpen, f.slot(vs.ID()).Status())
	})

	t.Run("second sweep finds nothing", func(t *testing.T) {
		f := newFixture(t)
		newSweepScene(f)
		alloc := commands.NewAllocator(f.store, f.clock, f.policy(true), f.logger)
		sweeper := commands.NewSweeper(f.store, alloc, shared.SweepPolicy{ConfirmedRetention: 24 * time.Hour}, f.logger)
		_, err := sweeper.Sweep(f.ctx, now)
		require.NoError(t, err)

		result, err := sweeper.Sweep(f.ctx, now)

		require.NoError(t, err)
		assert.Equal(t, commands.SweepResult{}, result)
	})

	t.Run("slot starting exactly now is kept", func(t *testing.T) {
		f := newFixture(t)
		vs := f.seedSlot(now, time.Hour, slot.StatusOpen)
		alloc := commands.NewAllocator(f.store, f.clock, f.policy(true), f.logger)
		sweeper := commands.NewSweeper(f.store, alloc, shared.SweepPolicy{}, f.logger)

		_, err := sweeper.Sweep(f.ctx, now)

		require.NoError(t, err)
		assert.True(t, f.slotExists(vs))
	})
}

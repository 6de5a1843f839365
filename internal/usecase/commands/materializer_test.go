//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"visit-scheduler/internal/domain/slot"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase/commands"
	"visit-scheduler/internal/usecase/shared"
	"visit-scheduler/tests/common/builder"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jan6  = civil.Date{Year: 2025, Month: time.January, Day: 6}
	jan12 = civil.Date{Year: 2025, Month: time.January, Day: 12}
)

func (f *fixture) seedPattern(b *builder.PatternBuilder) {
	f.t.Helper()
	p := b.WithProperty(f.propertyID).MustBuildDomain()
	require.NoError(f.t, f.store.Within(f.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Patterns().Create(ctx, p)
	}))
}

func TestSlotMaterializer_Materialize(t *testing.T) {
	t.Run("creates each tile once", func(t *testing.T) {
		f := newFixture(t)
		f.seedPattern(builder.NewPatternBuilder())
		m := commands.NewSlotMaterializer(f.store, f.clock, f.policy(true), f.logger)

		n, err := m.Materialize(f.ctx, f.propertyID, jan6, jan12)
		require.NoError(t, err)
		assert.Equal(t, 4, n)

		n, err = m.Materialize(f.ctx, f.propertyID, jan6, jan12)
		require.NoError(t, err)
		assert.Zero(t, n)

		slots := f.slotsOn(monday(0, 0))
		require.Len(t, slots, 4)
		for _, s := range slots {
			assert.Equal(t, slot.StatusOpen, s.Status())
			assert.Equal(t, 30*time.Minute, s.Interval().Duration())
		}
	})

	t.Run("concurrent callers never duplicate", func(t *testing.T) {
		f := newFixture(t)
		f.seedPattern(builder.NewPatternBuilder())
		m := commands.NewSlotMaterializer(f.store, f.clock, f.policy(true), f.logger)

		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			total int
		)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				n, err := m.Materialize(f.ctx, f.propertyID, jan6, jan12)
				assert.NoError(t, err)
				mu.Lock()
				total += n
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Equal(t, 4, total)
		assert.Len(t, f.slotsOn(monday(0, 0)), 4)
	})

	t.Run("no patterns", func(t *testing.T) {
		f := newFixture(t)
		m := commands.NewSlotMaterializer(f.store, f.clock, f.policy(true), f.logger)

		n, err := m.Materialize(f.ctx, f.propertyID, jan6, jan12)

		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("range beyond the horizon is rejected without patterns", func(t *testing.T) {
		f := newFixture(t)
		m := commands.NewSlotMaterializer(f.store, f.clock, f.policy(true), f.logger)

		n, err := m.Materialize(f.ctx, f.propertyID, jan6, jan6.AddDays(1000))

		assert.Zero(t, n)
		assert.ErrorIs(t, err, slot.ErrRangeTooLarge)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("unknown property", func(t *testing.T) {
		f := newFixture(t)
		m := commands.NewSlotMaterializer(f.store, f.clock, f.policy(true), f.logger)

		_, err := m.Materialize(f.ctx, uuid.New(), jan6, jan12)

		assert.Error(t, err)
	})

	t.Run("withdrawn slot is not recreated", func(t *testing.T) {
		f := newFixture(t)
		f.seedPattern(builder.NewPatternBuilder())
		f.seedSlot(monday(9, 0), 30*time.Minute, slot.StatusCancelled)
		m := commands.NewSlotMaterializer(f.store, f.clock, f.policy(true), f.logger)

		n, err := m.Materialize(f.ctx, f.propertyID, jan6, jan12)

		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})
}

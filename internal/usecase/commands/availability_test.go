//go:build unit

package commands_test

import (
	"testing"
	"time"

	"visit-scheduler/internal/domain/availability"
	"visit-scheduler/internal/domain/slot"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase/commands"
	"visit-scheduler/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityCommands_CreatePattern(t *testing.T) {
	tests := []struct {
		name    string
		actor   func(f *fixture) uuid.UUID
		spec    func(f *fixture) availability.PatternSpec
		wantErr error
	}{
		{
			name:  "owner creates pattern",
			actor: func(f *fixture) uuid.UUID { return f.ownerID },
			spec: func(f *fixture) availability.PatternSpec {
				return builder.NewPatternBuilder().WithProperty(f.propertyID).Spec()
			},
		},
		{
			name:  "stranger is rejected",
			actor: func(*fixture) uuid.UUID { return uuid.New() },
			spec: func(f *fixture) availability.PatternSpec {
				return builder.NewPatternBuilder().WithProperty(f.propertyID).Spec()
			},
			wantErr: errs.ErrForbidden,
		},
		{
			name:  "unknown property",
			actor: func(f *fixture) uuid.UUID { return f.ownerID },
			spec: func(*fixture) availability.PatternSpec {
				return builder.NewPatternBuilder().Spec()
			},
			wantErr: errs.ErrNotFound,
		},
		{
			name:  "invalid window",
			actor: func(f *fixture) uuid.UUID { return f.ownerID },
			spec: func(f *fixture) availability.PatternSpec {
				return builder.NewPatternBuilder().WithProperty(f.propertyID).WithWindow("11:00", "09:00", 30).Spec()
			},
			wantErr: errs.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			cmds := commands.NewAvailabilityCommands(f.store, f.clock, f.logger)

			p, err := cmds.CreatePattern(f.ctx, tt.actor(f), tt.spec(f))

			if tt.wantErr != nil {
				assert.True(t, errs.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, f.propertyID, p.PropertyID())
		})
	}
}

func TestAvailabilityCommands_DeletePattern(t *testing.T) {
	f := newFixture(t)
	cmds := commands.NewAvailabilityCommands(f.store, f.clock, f.logger)
	p, err := cmds.CreatePattern(f.ctx, f.ownerID, builder.NewPatternBuilder().WithProperty(f.propertyID).Spec())
	require.NoError(t, err)

	err = cmds.DeletePattern(f.ctx, uuid.New(), f.propertyID, p.ID())
	assert.True(t, errs.Is(err, errs.ErrForbidden))

	require.NoError(t, cmds.DeletePattern(f.ctx, f.ownerID, f.propertyID, p.ID()))

	err = cmds.DeletePattern(f.ctx, f.ownerID, f.propertyID, p.ID())
	assert.ErrorIs(t, err, commands.ErrPatternGone)

	err = cmds.DeletePattern(f.ctx, f.ownerID, f.propertyID, uuid.New())
	assert.ErrorIs(t, err, commands.ErrPatternNotFound)

	t.Run("deleted pattern stops expanding", func(t *testing.T) {
		m := commands.NewSlotMaterializer(f.store, f.clock, f.policy(true), f.logger)
		n, err := m.Materialize(f.ctx, f.propertyID, jan6, jan12)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestAvailabilityCommands_AddAdHocSlot(t *testing.T) {
	t.Run("adds open slot", func(t *testing.T) {
		f := newFixture(t)
		cmds := commands.NewAvailabilityCommands(f.store, f.clock, f.logger)

		s, err := cmds.AddAdHocSlot(f.ctx, f.ownerID, f.propertyID, monday(15, 0), monday(15, 45))

		require.NoError(t, err)
		assert.Nil(t, s.PatternID())
		assert.Equal(t, slot.StatusOpen, f.slot(s.ID()).Status())
	})

	t.Run("overlapping slot is rejected", func(t *testing.T) {
		f := newFixture(t)
		f.seedSlot(monday(15, 0), time.Hour, slot.StatusReserved)
		cmds := commands.NewAvailabilityCommands(f.store, f.clock, f.logger)

		_, err := cmds.AddAdHocSlot(f.ctx, f.ownerID, f.propertyID, monday(15, 30), monday(16, 30))

		assert.ErrorIs(t, err, commands.ErrSlotOverlaps)
		assert.True(t, errs.Is(err, errs.ErrSlotUnavailable))
	})

	t.Run("withdrawn slot does not block overlap", func(t *testing.T) {
		f := newFixture(t)
		f.seedSlot(monday(15, 0), time.Hour, slot.StatusCancelled)
		cmds := commands.NewAvailabilityCommands(f.store, f.clock, f.logger)

		_, err := cmds.AddAdHocSlot(f.ctx, f.ownerID, f.propertyID, monday(15, 30), monday(16, 30))

		assert.NoError(t, err)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		f := newFixture(t)
		cmds := commands.NewAvailabilityCommands(f.store, f.clock, f.logger)

		_, err := cmds.AddAdHocSlot(f.ctx, uuid.New(), f.propertyID, monday(15, 0), monday(16, 0))

		assert.True(t, errs.Is(err, errs.ErrForbidden))
	})

	t.Run("end before start", func(t *testing.T) {
		f := newFixture(t)
		cmds := commands.NewAvailabilityCommands(f.store, f.clock, f.logger)

		_, err := cmds.AddAdHocSlot(f.ctx, f.ownerID, f.propertyID, monday(16, 0), monday(15, 0))

		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestAvailabilityCommands_WithdrawSlot(t *testing.T) {
	f := newFixture(t)
	cmds := commands.NewAvailabilityCommands(f.store, f.clock, f.logger)
	open := f.seedSlot(monday(10, 0), 30*time.Minute, slot.StatusOpen)
	held := f.seedSlot(monday(11, 0), 30*time.Minute, slot.StatusReserved)

	require.NoError(t, cmds.WithdrawSlot(f.ctx, f.ownerID, f.propertyID, open.ID()))
	assert.Equal(t, slot.StatusCancelled, f.slot(open.ID()).Status())

	err := cmds.WithdrawSlot(f.ctx, f.ownerID, f.propertyID, open.ID())
	assert.ErrorIs(t, err, commands.ErrSlotNotOpen)

	err = cmds.WithdrawSlot(f.ctx, f.ownerID, f.propertyID, held.ID())
	assert.ErrorIs(t, err, commands.ErrSlotNotOpen)

	err = cmds.WithdrawSlot(f.ctx, f.ownerID, f.propertyID, uuid.New())
	assert.ErrorIs(t, err, commands.ErrSlotNotFound)

	other := uuid.New()
	f.store.PutProperty(other, f.ownerID, "UTC")
	err = cmds.WithdrawSlot(f.ctx, f.ownerID, other, held.ID())
	assert.ErrorIs(t, err, commands.ErrSlotNotFound)
}

//go:build unit

package booking_test

import (
	"testing"
	"time"

	"visit-scheduler/internal/domain/booking"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPendingBooking(t *testing.T) {
	now := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

	t.Run("hold deadline is now plus hold", func(t *testing.T) {
		b, err := booking.NewPendingBooking(uuid.New(), uuid.New(), uuid.New(), now, 15*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, now.Add(15*time.Minute), b.ReservationExpiresAt())
		assert.True(t, b.IsLive())
	})

	t.Run("missing references", func(t *testing.T) {
		_, err := booking.NewPendingBooking(uuid.Nil, uuid.New(), uuid.New(), now, time.Minute)
		assert.ErrorIs(t, err, booking.ErrMissingReference)
	})

	t.Run("non-positive hold", func(t *testing.T) {
		_, err := booking.NewPendingBooking(uuid.New(), uuid.New(), uuid.New(), now, 0)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestBooking_Transitions(t *testing.T) {
	created := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	beforeDeadline := created.Add(14 * time.Minute)
	atDeadline := created.Add(15 * time.Minute)
	afterDeadline := atDeadline.Add(time.Nanosecond)

	t.Run("confirm before deadline", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, b.Confirm(beforeDeadline))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, beforeDeadline, b.UpdatedAt())
	})

	t.Run("confirm exactly at deadline succeeds", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, b.Confirm(atDeadline))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("confirm after deadline fails", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildDomain()
		assert.ErrorIs(t, b.Confirm(afterDeadline), booking.ErrHoldExpired)
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("confirm twice fails", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).BuildDomain()
		err := b.Confirm(beforeDeadline)
		assert.ErrorIs(t, err, booking.ErrNotPending)
		assert.True(t, errs.Is(err, errs.ErrInvalidState))
	})

	t.Run("cancel live bookings", func(t *testing.T) {
		for _, st := range []booking.Status{booking.StatusPending, booking.StatusConfirmed} {
			b := builder.NewBookingBuilder().WithStatus(st).BuildDomain()
			require.NoError(t, b.Cancel(beforeDeadline), st)
			assert.Equal(t, booking.StatusCancelled, b.Status())
		}
	})

	t.Run("cancel finished bookings fails", func(t *testing.T) {
		for _, st := range []booking.Status{booking.StatusCancelled, booking.StatusExpired} {
			b := builder.NewBookingBuilder().WithStatus(st).BuildDomain()
			assert.ErrorIs(t, b.Cancel(beforeDeadline), booking.ErrAlreadyFinished, st)
		}
	})

	t.Run("expire only once the hold elapsed", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildDomain()
		assert.ErrorIs(t, b.Expire(beforeDeadline), booking.ErrHoldActive)
		assert.ErrorIs(t, b.Expire(atDeadline), booking.ErrHoldActive)
		require.NoError(t, b.Expire(afterDeadline))
		assert.Equal(t, booking.StatusExpired, b.Status())
		assert.False(t, b.IsLive())
	})
}

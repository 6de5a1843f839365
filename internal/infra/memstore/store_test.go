//go:build unit

package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"visit-scheduler/internal/domain/booking"
	"visit-scheduler/internal/domain/slot"
	"visit-scheduler/internal/infra"
	"visit-scheduler/internal/infra/memstore"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase/shared"
	"visit-scheduler/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var errBoom = errors.New("boom")

type StoreTestSuite struct {
	suite.Suite
	ctx        context.Context
	store      *memstore.Store
	propertyID uuid.UUID
	now        time.Time
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New(time.UTC)
	s.propertyID = uuid.New()
	s.store.PutProperty(s.propertyID, uuid.New(), "UTC")
	s.now = time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StoreTestSuite) slotAt(hour int) *slot.VisitSlot {
	return builder.NewSlotBuilder().
		WithProperty(s.propertyID).
		At(time.Date(2025, time.January, 6, hour, 0, 0, 0, time.UTC), time.Hour).
		BuildDomain()
}

func (s *StoreTestSuite) insert(vs ...*slot.VisitSlot) {
	err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, v := range vs {
			if err := tx.Slots().Insert(ctx, v); err != nil {
				return err
			}
		}
		return nil
	})
	s.Require().NoError(err)
}

func (s *StoreTestSuite) findSlot(id uuid.UUID) (*slot.VisitSlot, error) {
	var found *slot.VisitSlot
	err := s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		found, err = tx.Slots().FindByID(ctx, id)
		return err
	})
	return found, err
}

func (s *StoreTestSuite) TestRollbackRestoresState() {
	existing := s.slotAt(9)
	s.insert(existing)
	added := s.slotAt(11)

	err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		s.Require().NoError(tx.Slots().Insert(ctx, added))
		ok, err := tx.Slots().CompareAndSetStatus(ctx, existing.ID(), slot.StatusOpen, slot.StatusReserved, s.now)
		s.Require().NoError(err)
		s.Require().True(ok)
		return errBoom
	})
	s.Require().ErrorIs(err, errBoom)

	_, err = s.findSlot(added.ID())
	s.True(errs.Is(err, errs.ErrNotFound))

	got, err := s.findSlot(existing.ID())
	s.Require().NoError(err)
	s.Equal(slot.StatusOpen, got.Status())
}

func (s *StoreTestSuite) TestSlotConstraints() {
	s.Run("duplicate start", func() {
		s.SetupTest()
		first := s.slotAt(9)
		s.insert(first)
		dup := builder.NewSlotBuilder().WithProperty(s.propertyID).At(first.StartAt(), 30*time.Minute).BuildDomain()

		err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Slots().Insert(ctx, dup)
		})

		s.True(infra.IsKind(err, infra.KindDuplicateKey))
		s.Equal(infra.ConstraintSlotStartUnique, infra.ConstraintOf(err))
	})

	s.Run("live overlap", func() {
		s.SetupTest()
		held := builder.NewSlotBuilder().WithProperty(s.propertyID).
			At(time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC), time.Hour).
			WithStatus(slot.StatusReserved).BuildDomain()
		s.insert(held)
		overlapping := builder.NewSlotBuilder().WithProperty(s.propertyID).
			At(time.Date(2025, time.January, 6, 9, 30, 0, 0, time.UTC), time.Hour).
			WithStatus(slot.StatusConfirmed).BuildDomain()

		err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Slots().Insert(ctx, overlapping)
		})

		s.True(infra.IsKind(err, infra.KindConflict))
		s.Equal(infra.ConstraintSlotNoLiveOverlap, infra.ConstraintOf(err))
	})

	s.Run("open slots may overlap", func() {
		s.SetupTest()
		s.insert(s.slotAt(9))
		s.insert(builder.NewSlotBuilder().WithProperty(s.propertyID).
			At(time.Date(2025, time.January, 6, 9, 30, 0, 0, time.UTC), time.Hour).BuildDomain())
	})

	s.Run("insert if absent skips taken starts", func() {
		s.SetupTest()
		first := s.slotAt(9)
		s.insert(first)

		var n int
		err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			n, err = tx.Slots().InsertIfAbsent(ctx, []*slot.VisitSlot{
				builder.NewSlotBuilder().WithProperty(s.propertyID).At(first.StartAt(), time.Hour).BuildDomain(),
				s.slotAt(10),
			})
			return err
		})

		s.Require().NoError(err)
		s.Equal(1, n)
	})
}

func (s *StoreTestSuite) TestCompareAndSetStatus() {
	vs := s.slotAt(9)
	s.insert(vs)

	err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := tx.Slots().CompareAndSetStatus(ctx, vs.ID(), slot.StatusOpen, slot.StatusReserved, s.now)
		s.Require().NoError(err)
		s.True(ok)

		ok, err = tx.Slots().CompareAndSetStatus(ctx, vs.ID(), slot.StatusOpen, slot.StatusReserved, s.now)
		s.Require().NoError(err)
		s.False(ok)
		return nil
	})
	s.Require().NoError(err)
}

func (s *StoreTestSuite) TestLiveBookingUniqueness() {
	first, second := s.slotAt(9), s.slotAt(11)
	s.insert(first, second)
	visitor := uuid.New()

	held := builder.NewBookingBuilder().ForSlot(first).With(func(b *builder.BookingBuilder) { b.VisitorID = visitor }).BuildDomain()
	s.Require().NoError(s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Insert(ctx, held)
	}))

	s.Run("same slot", func() {
		err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Bookings().Insert(ctx, builder.NewBookingBuilder().ForSlot(first).BuildDomain())
		})
		s.Equal(infra.ConstraintBookingLiveSlot, infra.ConstraintOf(err))
	})

	s.Run("same visitor and property", func() {
		err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Bookings().Insert(ctx, builder.NewBookingBuilder().ForSlot(second).
				With(func(b *builder.BookingBuilder) { b.VisitorID = visitor }).BuildDomain())
		})
		s.Equal(infra.ConstraintBookingLiveVisitor, infra.ConstraintOf(err))
	})

	s.Run("finished bookings do not count", func() {
		err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			ok, err := tx.Bookings().CompareAndSetStatus(ctx, held.ID(), booking.StatusPending, booking.StatusCancelled, s.now)
			if err != nil || !ok {
				return errBoom
			}
			return tx.Bookings().Insert(ctx, builder.NewBookingBuilder().ForSlot(second).
				With(func(b *builder.BookingBuilder) { b.VisitorID = visitor }).BuildDomain())
		})
		s.NoError(err)
	})
}

func (s *StoreTestSuite) TestReadOnlyRejectsWrites() {
	err := s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Slots().Insert(ctx, s.slotAt(9))
	})

	s.True(errs.Is(err, errs.ErrStorage))
}

func (s *StoreTestSuite) TestDeleteCascadesToBookings() {
	started := s.slotAt(9)
	s.insert(started)
	b := builder.NewBookingBuilder().ForSlot(started).WithStatus(booking.StatusCancelled).BuildDomain()
	s.Require().NoError(s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Insert(ctx, b)
	}))

	err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Slots().DeleteStarted(ctx, s.propertyID, started.StartAt().Add(time.Minute))
		s.Equal(int64(1), n)
		return err
	})
	s.Require().NoError(err)

	err = s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Bookings().FindByID(ctx, b.ID())
		return err
	})
	s.True(errs.Is(err, errs.ErrNotFound))
}

func TestStore_CanceledContext(t *testing.T) {
	store := memstore.New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.Within(ctx, func(context.Context, shared.Tx) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStore_LockPropertyIsReentrant(t *testing.T) {
	store := memstore.New(nil)
	id := uuid.New()

	err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		require.NoError(t, tx.LockProperty(ctx, id))
		return tx.LockProperty(ctx, id)
	})

	assert.NoError(t, err)
}

package queries

//go:generate mockgen -source=scheduling.go -destination=../../../tests/mock/queries/scheduling.go -package=queriesmock

import (
	"context"
	"time"

	"visit-scheduler/internal/domain/booking"
	"visit-scheduler/internal/domain/property"
	"visit-scheduler/internal/domain/slot"
	"visit-scheduler/internal/infra"
	"visit-scheduler/internal/pkg/clock"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase/shared"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

const defaultBookingListLimit = 100

var ErrBookingAccessDenied = errs.Mark(errs.New("booking belongs to another visitor"), errs.ErrForbidden)

type SchedulingQueries interface {
	// ListOpenSlots returns bookable slots whose local date falls in [from, to],
	// sorted by start. It never materializes anything.
	ListOpenSlots(ctx context.Context, propertyID uuid.UUID, from, to civil.Date) ([]SlotView, error)
	GetSlot(ctx context.Context, slotID uuid.UUID) (*SlotView, error)
	// GetBooking enforces that actor is the visitor or the property owner.
	GetBooking(ctx context.Context, bookingID, actor uuid.UUID) (*BookingView, error)
	// GetBookingSystem skips the access check; for read-after-write only.
	GetBookingSystem(ctx context.Context, bookingID uuid.UUID) (*BookingView, error)
	ListByVisitor(ctx context.Context, visitorID uuid.UUID, limit int) ([]BookingView, error)
	ListPatterns(ctx context.Context, propertyID uuid.UUID) ([]PatternView, error)
}

type schedulingQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSchedulingQueries(uow shared.UnitOfWork, clock clock.Clock) SchedulingQueries {
	return &schedulingQueriesImpl{
		uow:   uow,
		clock: clock,
	}
}

func (q *schedulingQueriesImpl) ListOpenSlots(ctx context.Context, propertyID uuid.UUID, from, to civil.Date) ([]SlotView, error) {
	if to.Before(from) {
		return nil, slot.ErrInvalidRange
	}
	now := q.clock.Now()

	var views []SlotView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		prop, err := tx.Properties().FindByID(ctx, propertyID)
		if err != nil {
			return err
		}
		loc := prop.Location()

		slots, err := tx.Slots().ListByPropertyBetween(ctx, propertyID, from.In(loc), to.AddDays(1).In(loc), slot.StatusOpen)
		if err != nil {
			return err
		}

		views = make([]SlotView, 0, len(slots))
		for _, s := range slots {
			if !s.IsBookable(now) || !inLocalRange(s.StartAt(), loc, from, to) {
				continue
			}
			views = append(views, NewSlotView(s, loc))
		}
		return nil
	})
	if err != nil {
		return nil, shared.AsStorageErr(err)
	}
	return views, nil
}

func (q *schedulingQueriesImpl) GetSlot(ctx context.Context, slotID uuid.UUID) (*SlotView, error) {
	var view *SlotView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Slots().FindByID(ctx, slotID)
		if err != nil {
			return err
		}
		prop, err := tx.Properties().FindByID(ctx, s.PropertyID())
		if err != nil {
			return err
		}
		v := NewSlotView(s, prop.Location())
		view = &v
		return nil
	})
	if err != nil {
		return nil, shared.AsStorageErr(err)
	}
	return view, nil
}

func (q *schedulingQueriesImpl) GetBooking(ctx context.Context, bookingID, actor uuid.UUID) (*BookingView, error) {
	return q.getBooking(ctx, bookingID, func(b *booking.Booking, prop *property.Property) error {
		if !prop.CanManageBooking(actor, b.VisitorID()) {
			return ErrBookingAccessDenied
		}
		return nil
	})
}

func (q *schedulingQueriesImpl) GetBookingSystem(ctx context.Context, bookingID uuid.UUID) (*BookingView, error) {
	return q.getBooking(ctx, bookingID, nil)
}

func (q *schedulingQueriesImpl) getBooking(
	ctx context.Context,
	bookingID uuid.UUID,
	authorize func(*booking.Booking, *property.Property) error,
) (*BookingView, error) {
	var view *BookingView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		prop, err := tx.Properties().FindByID(ctx, b.PropertyID())
		if err != nil {
			return err
		}
		if authorize != nil {
			if err := authorize(b, prop); err != nil {
				return err
			}
		}
		s, err := findSlotIfPresent(ctx, tx, b.SlotID())
		if err != nil {
			return err
		}
		v := NewBookingView(b, s, prop.Location())
		view = &v
		return nil
	})
	if err != nil {
		return nil, shared.AsStorageErr(err)
	}
	return view, nil
}

func (q *schedulingQueriesImpl) ListByVisitor(ctx context.Context, visitorID uuid.UUID, limit int) ([]BookingView, error) {
	if limit <= 0 || limit > defaultBookingListLimit {
		limit = defaultBookingListLimit
	}

	var views []BookingView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		bookings, err := tx.Bookings().ListByVisitor(ctx, visitorID, limit)
		if err != nil {
			return err
		}

		locations := make(map[uuid.UUID]*time.Location)
		views = make([]BookingView, 0, len(bookings))
		for _, b := range bookings {
			loc, ok := locations[b.PropertyID()]
			if !ok {
				prop, err := tx.Properties().FindByID(ctx, b.PropertyID())
				if err != nil {
					return err
				}
				loc = prop.Location()
				locations[b.PropertyID()] = loc
			}
			s, err := findSlotIfPresent(ctx, tx, b.SlotID())
			if err != nil {
				return err
			}
			views = append(views, NewBookingView(b, s, loc))
		}
		return nil
	})
	if err != nil {
		return nil, shared.AsStorageErr(err)
	}
	return views, nil
}

func (q *schedulingQueriesImpl) ListPatterns(ctx context.Context, propertyID uuid.UUID) ([]PatternView, error) {
	var views []PatternView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Properties().FindByID(ctx, propertyID); err != nil {
			return err
		}
		patterns, err := tx.Patterns().ListByProperty(ctx, propertyID, false)
		if err != nil {
			return err
		}
		views = make([]PatternView, len(patterns))
		for i, p := range patterns {
			views[i] = NewPatternView(p)
		}
		return nil
	})
	if err != nil {
		return nil, shared.AsStorageErr(err)
	}
	return views, nil
}

func findSlotIfPresent(ctx context.Context, tx shared.Tx, slotID uuid.UUID) (*slot.VisitSlot, error) {
	s, err := tx.Slots().FindByID(ctx, slotID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func inLocalRange(t time.Time, loc *time.Location, from, to civil.Date) bool {
	d := civil.DateOf(t.In(loc))
	return !d.Before(from) && !d.After(to)
}

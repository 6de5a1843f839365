package usecase

//go:generate mockgen -source=scheduling.go -destination=../../tests/mock/usecase/scheduling.go -package=usecasemock

import (
	"context"
	"log/slog"

	"visit-scheduler/internal/pkg/clock"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase/commands"
	"visit-scheduler/internal/usecase/queries"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

var ErrSlotNotInProperty = errs.Mark(errs.New("slot does not belong to this property"), errs.ErrNotFound)

// SchedulingService is the façade the HTTP layer talks to. It owns
// authorization and presentation; state changes go through the allocator.
type SchedulingService interface {
	ListAvailableSlots(ctx context.Context, propertyID uuid.UUID, from, to civil.Date) ([]queries.SlotView, error)
	Book(ctx context.Context, propertyID, visitorID, slotID uuid.UUID) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, bookingID, actor uuid.UUID) (*queries.BookingView, error)
	ConfirmBooking(ctx context.Context, bookingID, actor uuid.UUID) (*queries.BookingView, error)
	GetBooking(ctx context.Context, bookingID, actor uuid.UUID) (*queries.BookingView, error)
	ListMyBookings(ctx context.Context, visitorID uuid.UUID) ([]queries.BookingView, error)
}

type schedulingServiceImpl struct {
	materializer commands.SlotMaterializer
	allocator    commands.Allocator
	queries      queries.SchedulingQueries
	clock        clock.Clock
	logger       *slog.Logger
}

func NewSchedulingService(
	materializer commands.SlotMaterializer,
	allocator commands.Allocator,
	queries queries.SchedulingQueries,
	clock clock.Clock,
	logger *slog.Logger,
) SchedulingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &schedulingServiceImpl{
		materializer: materializer,
		allocator:    allocator,
		queries:      queries,
		clock:        clock,
		logger:       logger,
	}
}

// ListAvailableSlots materializes the range first so listing and booking see
// the same rows, then reclaims the property's lapsed holds so they are offered
// again.
func (s *schedulingServiceImpl) ListAvailableSlots(ctx context.Context, propertyID uuid.UUID, from, to civil.Date) ([]queries.SlotView, error) {
	if _, err := s.materializer.Materialize(ctx, propertyID, from, to); err != nil {
		return nil, err
	}
	// The minute-level cron releases anything missed here
	if _, err := s.allocator.ReleaseExpiredHoldsForProperty(ctx, propertyID, s.clock.Now()); err != nil {
		s.logger.Warn("failed to release expired holds before listing",
			"property_id", propertyID,
			"error", err.Error())
	}
	return s.queries.ListOpenSlots(ctx, propertyID, from, to)
}

func (s *schedulingServiceImpl) Book(ctx context.Context, propertyID, visitorID, slotID uuid.UUID) (*queries.BookingView, error) {
	target, err := s.queries.GetSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if target.PropertyID != propertyID {
		return nil, ErrSlotNotInProperty
	}

	b, err := s.allocator.Reserve(ctx, slotID, visitorID)
	if err != nil {
		return nil, err
	}

	// Read-after-write for the localized view
	return s.queries.GetBookingSystem(ctx, b.ID())
}

func (s *schedulingServiceImpl) CancelBooking(ctx context.Context, bookingID, actor uuid.UUID) (*queries.BookingView, error) {
	if _, err := s.queries.GetBooking(ctx, bookingID, actor); err != nil {
		return nil, err
	}
	if _, err := s.allocator.Cancel(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.queries.GetBookingSystem(ctx, bookingID)
}

func (s *schedulingServiceImpl) ConfirmBooking(ctx context.Context, bookingID, actor uuid.UUID) (*queries.BookingView, error) {
	if _, err := s.queries.GetBooking(ctx, bookingID, actor); err != nil {
		return nil, err
	}
	if _, err := s.allocator.Confirm(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.queries.GetBookingSystem(ctx, bookingID)
}

func (s *schedulingServiceImpl) GetBooking(ctx context.Context, bookingID, actor uuid.UUID) (*queries.BookingView, error) {
	return s.queries.GetBooking(ctx, bookingID, actor)
}

func (s *schedulingServiceImpl) ListMyBookings(ctx context.Context, visitorID uuid.UUID) ([]queries.BookingView, error) {
	return s.queries.ListByVisitor(ctx, visitorID, 0)
}

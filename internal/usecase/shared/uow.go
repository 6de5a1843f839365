package shared

import (
	"context"
	"time"

	"visit-scheduler/internal/domain/availability"
	"visit-scheduler/internal/domain/booking"
	"visit-scheduler/internal/domain/property"
	"visit-scheduler/internal/domain/slot"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	// LockProperty serializes expansion and sweeping of one property until the
	// transaction ends. Other properties are unaffected.
	LockProperty(ctx context.Context, propertyID uuid.UUID) error

	Properties() PropertyReader
	Patterns() PatternRepository
	Slots() SlotRepository
	Bookings() BookingRepository
}

type PropertyReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error)
}

type PatternRepository interface {
	Create(ctx context.Context, p *availability.Pattern) error
	FindByID(ctx context.Context, id uuid.UUID) (*availability.Pattern, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID, includeDeleted bool) ([]*availability.Pattern, error)
	MarkDeleted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

type SlotRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*slot.VisitSlot, error)
	// ListByPropertyBetween returns slots overlapping [from, to) ordered by start,
	// restricted to statuses when any are given.
	ListByPropertyBetween(ctx context.Context, propertyID uuid.UUID, from, to time.Time, statuses ...slot.Status) ([]*slot.VisitSlot, error)
	// InsertIfAbsent skips slots whose (property, start) already exists and
	// reports how many rows were written.
	InsertIfAbsent(ctx context.Context, slots []*slot.VisitSlot) (int, error)
	Insert(ctx context.Context, s *slot.VisitSlot) error
	HasOverlap(ctx context.Context, propertyID uuid.UUID, iv slot.Interval, excludeID uuid.UUID, statuses ...slot.Status) (bool, error)
	// CompareAndSetStatus moves the slot to next only if it is still in expected.
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, expected, next slot.Status, at time.Time) (bool, error)

	// PropertiesNeedingSweep lists properties with non-confirmed slots that
	// started before now, plus, when confirmedCutoff is set, properties with
	// confirmed slots that ended before it.
	PropertiesNeedingSweep(ctx context.Context, now time.Time, confirmedCutoff *time.Time) ([]uuid.UUID, error)
	ExpireStarted(ctx context.Context, propertyID uuid.UUID, now time.Time) (int64, error)
	DeleteStarted(ctx context.Context, propertyID uuid.UUID, now time.Time) (int64, error)
	DeleteConfirmedEndedBefore(ctx context.Context, propertyID uuid.UUID, cutoff time.Time) (int64, error)
}

type BookingRepository interface {
	Insert(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// FindLiveByVisitorAndProperty returns nil when the visitor holds no live booking.
	FindLiveByVisitorAndProperty(ctx context.Context, visitorID, propertyID uuid.UUID) (*booking.Booking, error)
	// CompareAndSetStatus moves the booking to next only if it is still in expected.
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, expected, next booking.Status, at time.Time) (bool, error)
	// ListExpiredHolds returns PENDING bookings whose hold deadline has been
	// reached, optionally limited to one property.
	ListExpiredHolds(ctx context.Context, now time.Time, propertyID *uuid.UUID, limit int) ([]*booking.Booking, error)
	// ExpirePendingOnStartedSlots ends holds whose slot has already started.
	ExpirePendingOnStartedSlots(ctx context.Context, propertyID uuid.UUID, now time.Time) (int64, error)
	ListByVisitor(ctx context.Context, visitorID uuid.UUID, limit int) ([]*booking.Booking, error)
}

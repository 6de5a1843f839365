//go:build unit || e2e

package builder

import (
	"time"

	"visit-scheduler/internal/domain/booking"
	"visit-scheduler/internal/domain/slot"
	"visit-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	PatternID  *uuid.UUID
	StartAt    time.Time
	Duration   time.Duration
	Status     slot.Status
	CreatedAt  time.Time
}

func NewSlotBuilder() *SlotBuilder {
	start := time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)
	return &SlotBuilder{
		ID:         uuid.New(),
		PropertyID: uuid.New(),
		StartAt:    start,
		Duration:   30 * time.Minute,
		Status:     slot.StatusOpen,
		CreatedAt:  start.Add(-7 * 24 * time.Hour),
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

func (b *SlotBuilder) WithProperty(id uuid.UUID) *SlotBuilder {
	b.PropertyID = id
	return b
}

func (b *SlotBuilder) At(start time.Time, d time.Duration) *SlotBuilder {
	b.StartAt = start
	b.Duration = d
	return b
}

func (b *SlotBuilder) WithStatus(s slot.Status) *SlotBuilder {
	b.Status = s
	return b
}

func (b *SlotBuilder) BuildDomain() *slot.VisitSlot {
	iv, err := slot.NewInterval(b.StartAt, b.StartAt.Add(b.Duration))
	if err != nil {
		panic(err)
	}
	return slot.ReconstructSlot(b.ID, b.PropertyID, b.PatternID, iv, b.Status, b.CreatedAt, b.CreatedAt)
}

func (b *SlotBuilder) BuildView() *queries.SlotView {
	v := queries.NewSlotView(b.BuildDomain(), time.UTC)
	return &v
}

type BookingBuilder struct {
	ID         uuid.UUID
	SlotID     uuid.UUID
	VisitorID  uuid.UUID
	PropertyID uuid.UUID
	Status     booking.Status
	CreatedAt  time.Time
	Hold       time.Duration
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:         uuid.New(),
		SlotID:     uuid.New(),
		VisitorID:  uuid.New(),
		PropertyID: uuid.New(),
		Status:     booking.StatusPending,
		CreatedAt:  time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC),
		Hold:       15 * time.Minute,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) ForSlot(s *slot.VisitSlot) *BookingBuilder {
	b.SlotID = s.ID()
	b.PropertyID = s.PropertyID()
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.ReconstructBooking(b.ID, b.SlotID, b.VisitorID, b.PropertyID, b.Status,
		b.CreatedAt, b.CreatedAt.Add(b.Hold), b.CreatedAt)
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	v := queries.NewBookingView(b.BuildDomain(), nil, time.UTC)
	return &v
}

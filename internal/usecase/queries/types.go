package queries

import (
	"time"

	"visit-scheduler/internal/domain/availability"
	"visit-scheduler/internal/domain/booking"
	"visit-scheduler/internal/domain/slot"

	"github.com/google/uuid"
)

// LocalTimeLayout renders wall-clock times in the property time zone.
const LocalTimeLayout = "2006-01-02T15:04:05"

// SlotView represents a visit slot with its local rendering
type SlotView struct {
	ID         uuid.UUID  `json:"id"`
	PropertyID uuid.UUID  `json:"property_id"`
	PatternID  *uuid.UUID `json:"pattern_id,omitempty"`
	StartAt    time.Time  `json:"start_at"`
	EndAt      time.Time  `json:"end_at"`
	LocalStart string     `json:"local_start"`
	LocalEnd   string     `json:"local_end"`
	TimeZone   string     `json:"time_zone"`
	Status     string     `json:"status"`
}

// BookingView represents a booking joined with its slot. Slot is nil once the
// sweeper has removed the slot.
type BookingView struct {
	ID                   uuid.UUID `json:"id"`
	SlotID               uuid.UUID `json:"slot_id"`
	VisitorID            uuid.UUID `json:"visitor_id"`
	PropertyID           uuid.UUID `json:"property_id"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"created_at"`
	ReservationExpiresAt time.Time `json:"reservation_expires_at"`
	UpdatedAt            time.Time `json:"updated_at"`
	Slot                 *SlotView `json:"slot,omitempty"`
}

type PatternView struct {
	ID                  uuid.UUID  `json:"id"`
	PropertyID          uuid.UUID  `json:"property_id"`
	Weekday             int        `json:"weekday"`
	StartTime           string     `json:"start_time"`
	EndTime             string     `json:"end_time"`
	SlotDurationMinutes int        `json:"slot_duration_minutes"`
	ValidFrom           string     `json:"valid_from"`
	ValidUntil          *string    `json:"valid_until,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	DeletedAt           *time.Time `json:"deleted_at,omitempty"`
}

func NewSlotView(s *slot.VisitSlot, loc *time.Location) SlotView {
	if loc == nil {
		loc = time.UTC
	}
	return SlotView{
		ID:         s.ID(),
		PropertyID: s.PropertyID(),
		PatternID:  s.PatternID(),
		StartAt:    s.StartAt(),
		EndAt:      s.EndAt(),
		LocalStart: s.StartAt().In(loc).Format(LocalTimeLayout),
		LocalEnd:   s.EndAt().In(loc).Format(LocalTimeLayout),
		TimeZone:   loc.String(),
		Status:     s.Status().String(),
	}
}

func NewBookingView(b *booking.Booking, s *slot.VisitSlot, loc *time.Location) BookingView {
	v := BookingView{
		ID:                   b.ID(),
		SlotID:               b.SlotID(),
		VisitorID:            b.VisitorID(),
		PropertyID:           b.PropertyID(),
		Status:               b.Status().String(),
		CreatedAt:            b.CreatedAt(),
		ReservationExpiresAt: b.ReservationExpiresAt(),
		UpdatedAt:            b.UpdatedAt(),
	}
	if s != nil {
		sv := NewSlotView(s, loc)
		v.Slot = &sv
	}
	return v
}

func NewPatternView(p *availability.Pattern) PatternView {
	v := PatternView{
		ID:                  p.ID(),
		PropertyID:          p.PropertyID(),
		Weekday:             int(p.Weekday()),
		StartTime:           p.Window().Start().String(),
		EndTime:             p.Window().End().String(),
		SlotDurationMinutes: p.SlotDurationMinutes(),
		ValidFrom:           p.ValidFrom().String(),
		CreatedAt:           p.CreatedAt(),
		DeletedAt:           p.DeletedAt(),
	}
	if u := p.ValidUntil(); u != nil {
		s := u.String()
		v.ValidUntil = &s
	}
	return v
}

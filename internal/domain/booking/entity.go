package booking

import (
	"errors"
	"time"

	"visit-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNotPending       = errs.Mark(errors.New("booking is not pending"), errs.ErrInvalidState)
	ErrHoldExpired      = errs.Mark(errors.New("reservation hold has expired"), errs.ErrInvalidState)
	ErrHoldActive       = errs.Mark(errors.New("reservation hold has not expired yet"), errs.ErrInvalidState)
	ErrAlreadyFinished  = errs.Mark(errors.New("booking is already cancelled or expired"), errs.ErrInvalidState)
	ErrInvalidHold      = errs.Mark(errors.New("hold duration must be positive"), errs.ErrValidation)
	ErrMissingReference = errs.Mark(errors.New("slot, visitor and property are required"), errs.ErrValidation)
)

type Booking struct {
	id                   uuid.UUID
	slotID               uuid.UUID
	visitorID            uuid.UUID
	propertyID           uuid.UUID
	status               Status
	createdAt            time.Time
	reservationExpiresAt time.Time
	updatedAt            time.Time
}

// NewPendingBooking opens a hold on a slot that expires after hold.
func NewPendingBooking(slotID, visitorID, propertyID uuid.UUID, now time.Time, hold time.Duration) (*Booking, error) {
	if slotID == uuid.Nil || visitorID == uuid.Nil || propertyID == uuid.Nil {
		return nil, ErrMissingReference
	}
	if hold <= 0 {
		return nil, ErrInvalidHold
	}
	return &Booking{
		id:                   uuid.New(),
		slotID:               slotID,
		visitorID:            visitorID,
		propertyID:           propertyID,
		status:               StatusPending,
		createdAt:            now,
		reservationExpiresAt: now.Add(hold),
		updatedAt:            now,
	}, nil
}

func ReconstructBooking(
	id, slotID, visitorID, propertyID uuid.UUID,
	status Status,
	createdAt, reservationExpiresAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                   id,
		slotID:               slotID,
		visitorID:            visitorID,
		propertyID:           propertyID,
		status:               status,
		createdAt:            createdAt,
		reservationExpiresAt: reservationExpiresAt,
		updatedAt:            updatedAt,
	}
}

func (b *Booking) Confirm(now time.Time) error {
	if b.status != StatusPending {
		return ErrNotPending
	}
	if b.HoldExpired(now) {
		return ErrHoldExpired
	}
	b.status = StatusConfirmed
	b.updatedAt = now
	return nil
}

func (b *Booking) Cancel(now time.Time) error {
	if b.status.IsTerminal() {
		return ErrAlreadyFinished
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

func (b *Booking) Expire(now time.Time) error {
	if b.status != StatusPending {
		return ErrNotPending
	}
	if !b.HoldExpired(now) {
		return ErrHoldActive
	}
	b.status = StatusExpired
	b.updatedAt = now
	return nil
}

// HoldExpired is true once now is past the deadline; the deadline instant
// itself still belongs to the hold.
func (b *Booking) HoldExpired(now time.Time) bool {
	return now.After(b.reservationExpiresAt)
}

func (b *Booking) IsLive() bool {
	return b.status.IsLive()
}

func (b *Booking) IsHeldBy(visitorID uuid.UUID) bool {
	return b.visitorID == visitorID
}

func (b *Booking) ID() uuid.UUID                   { return b.id }
func (b *Booking) SlotID() uuid.UUID               { return b.slotID }
func (b *Booking) VisitorID() uuid.UUID            { return b.visitorID }
func (b *Booking) PropertyID() uuid.UUID           { return b.propertyID }
func (b *Booking) Status() Status                  { return b.status }
func (b *Booking) CreatedAt() time.Time            { return b.createdAt }
func (b *Booking) ReservationExpiresAt() time.Time { return b.reservationExpiresAt }
func (b *Booking) UpdatedAt() time.Time            { return b.updatedAt }

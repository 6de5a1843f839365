package shared

import (
	"context"
	"fmt"

	"visit-scheduler/internal/domain/booking"
	"visit-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

// DuplicateBookingError is returned when a visitor already holds a live
// booking for the property. Existing may be nil when the conflict was only
// detected by the store.
type DuplicateBookingError struct {
	Existing *booking.Booking
	cause    error
}

func NewDuplicateBookingError(existing *booking.Booking, cause error) *DuplicateBookingError {
	return &DuplicateBookingError{Existing: existing, cause: cause}
}

func (e *DuplicateBookingError) Error() string {
	if e.Existing != nil {
		return fmt.Sprintf("visitor already holds booking %s for property %s", e.Existing.ID(), e.Existing.PropertyID())
	}
	return "visitor already holds a live booking for this property"
}

func (e *DuplicateBookingError) Unwrap() error { return e.cause }

func (e *DuplicateBookingError) Is(target error) bool {
	return target == errs.ErrDuplicateBooking
}

// ExistingBookingID is uuid.Nil when the existing booking is unknown.
func (e *DuplicateBookingError) ExistingBookingID() uuid.UUID {
	if e.Existing == nil {
		return uuid.Nil
	}
	return e.Existing.ID()
}

var taxonomy = []error{
	errs.ErrValidation,
	errs.ErrSlotUnavailable,
	errs.ErrDuplicateBooking,
	errs.ErrInvalidState,
	errs.ErrNotFound,
	errs.ErrForbidden,
	errs.ErrStorage,
}

// Classified reports whether err already carries one of the taxonomy markers.
func Classified(err error) bool {
	for _, marker := range taxonomy {
		if errs.Is(err, marker) {
			return true
		}
	}
	return false
}

// AsStorageErr marks anything that escaped classification as a storage
// failure. Context cancellation is passed through untouched.
func AsStorageErr(err error) error {
	if err == nil || Classified(err) {
		return err
	}
	if errs.Is(err, context.Canceled) || errs.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errs.Mark(err, errs.ErrStorage)
}

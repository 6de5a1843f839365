package errs

import "errors"

// Error taxonomy shared by the scheduling layers. Lower layers attach these
// with Mark so handlers can branch with errs.Is without seeing storage details.
var (
	// Malformed pattern or range; rejected before any mutation
	ErrValidation = errors.New("validation error")

	// Lost a reservation race or the slot is no longer bookable
	ErrSlotUnavailable = errors.New("slot unavailable")

	// Visitor already holds a live booking for the property
	ErrDuplicateBooking = errors.New("duplicate booking")

	// Booking or slot is not in the state the operation requires
	ErrInvalidState = errors.New("invalid state")

	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	// Underlying persistence failure; transient from the caller's point of view
	ErrStorage = errors.New("storage failure")
)

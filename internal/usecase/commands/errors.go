package commands

import (
	"visit-scheduler/internal/infra"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase/shared"
)

var (
	ErrSlotNotBookable    = errs.Mark(errs.New("slot is not open for booking"), errs.ErrSlotUnavailable)
	ErrSlotTaken          = errs.Mark(errs.New("slot was taken by another visitor"), errs.ErrSlotUnavailable)
	ErrSlotOverlaps       = errs.Mark(errs.New("slot overlaps an existing slot"), errs.ErrSlotUnavailable)
	ErrBookingChanged     = errs.Mark(errs.New("booking changed concurrently"), errs.ErrInvalidState)
	ErrSlotNotReserved    = errs.Mark(errs.New("slot is no longer reserved"), errs.ErrInvalidState)
	ErrSlotNotOpen        = errs.Mark(errs.New("only open slots can be withdrawn"), errs.ErrInvalidState)
	ErrNotPropertyOwner   = errs.Mark(errs.New("only the property owner can manage availability"), errs.ErrForbidden)
	ErrPatternNotFound    = errs.Mark(errs.New("availability pattern not found"), errs.ErrNotFound)
	ErrSlotNotFound       = errs.Mark(errs.New("visit slot not found"), errs.ErrNotFound)
	ErrPatternGone        = errs.Mark(errs.New("availability pattern is already deleted"), errs.ErrInvalidState)
	ErrPropertyNotManaged = errs.Mark(errs.New("property not found"), errs.ErrNotFound)
)

// writeErr maps store-level constraint violations onto the scheduling
// taxonomy. A live-booking clash on the visitor index is a duplicate booking;
// every other uniqueness or exclusion clash means the slot is gone.
func writeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindDuplicateKey):
		if infra.ConstraintOf(err) == infra.ConstraintBookingLiveVisitor {
			return shared.NewDuplicateBookingError(nil, err)
		}
		return errs.Mark(err, errs.ErrSlotUnavailable)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, errs.ErrSlotUnavailable)
	default:
		return shared.AsStorageErr(err)
	}
}

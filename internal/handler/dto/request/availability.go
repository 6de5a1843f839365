package request

import (
	"time"

	"visit-scheduler/internal/domain/availability"
	"visit-scheduler/internal/pkg/errs"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Weekday is a pointer so Sunday (0) passes the required check.
type CreatePatternRequest struct {
	Weekday             *int    `json:"weekday" binding:"required,min=0,max=6"`
	StartTime           string  `json:"startTime" binding:"required"`
	EndTime             string  `json:"endTime" binding:"required"`
	SlotDurationMinutes int     `json:"slotDurationMinutes" binding:"required,min=1,max=1440"`
	ValidFrom           string  `json:"validFrom" binding:"required"`
	ValidUntil          *string `json:"validUntil,omitempty"`
}

func (r CreatePatternRequest) ToSpec(propertyID uuid.UUID) (availability.PatternSpec, error) {
	validFrom, err := civil.ParseDate(r.ValidFrom)
	if err != nil {
		return availability.PatternSpec{}, errs.Mark(errs.Wrap(err, "validFrom must be YYYY-MM-DD"), errs.ErrValidation)
	}

	var validUntil *civil.Date
	if r.ValidUntil != nil && *r.ValidUntil != "" {
		d, err := civil.ParseDate(*r.ValidUntil)
		if err != nil {
			return availability.PatternSpec{}, errs.Mark(errs.Wrap(err, "validUntil must be YYYY-MM-DD"), errs.ErrValidation)
		}
		validUntil = &d
	}

	return availability.PatternSpec{
		PropertyID:          propertyID,
		Weekday:             *r.Weekday,
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		SlotDurationMinutes: r.SlotDurationMinutes,
		ValidFrom:           validFrom,
		ValidUntil:          validUntil,
	}, nil
}

type AddSlotRequest struct {
	StartAt time.Time `json:"startAt" binding:"required"`
	EndAt   time.Time `json:"endAt" binding:"required"`
}

package request

import (
	"visit-scheduler/internal/pkg/errs"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

type BookSlotRequest struct {
	SlotID uuid.UUID `json:"slotId" binding:"required"`
}

type SlotRangeQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// Dates returns the inclusive local date range. Horizon limits are checked by
// the expander, not here.
func (q SlotRangeQuery) Dates() (civil.Date, civil.Date, error) {
	from, err := civil.ParseDate(q.From)
	if err != nil {
		return civil.Date{}, civil.Date{}, errs.Mark(errs.Wrap(err, "from must be YYYY-MM-DD"), errs.ErrValidation)
	}
	to, err := civil.ParseDate(q.To)
	if err != nil {
		return civil.Date{}, civil.Date{}, errs.Mark(errs.Wrap(err, "to must be YYYY-MM-DD"), errs.ErrValidation)
	}
	return from, to, nil
}

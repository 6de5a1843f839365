package slot

import (
	"errors"
	"time"

	"visit-scheduler/internal/pkg/errs"
)

var ErrInvalidInterval = errs.Mark(errors.New("slot start must be before its end"), errs.ErrValidation)

// Interval is a half-open UTC range [start, end).
type Interval struct {
	start time.Time
	end   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{start: start.UTC(), end: end.UTC()}, nil
}

func (iv Interval) Start() time.Time { return iv.start }
func (iv Interval) End() time.Time   { return iv.end }

func (iv Interval) Duration() time.Duration {
	return iv.end.Sub(iv.start)
}

func (iv Interval) Overlaps(other Interval) bool {
	return iv.start.Before(other.end) && other.start.Before(iv.end)
}

package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"visit-scheduler/internal/pkg/errs"
)

const minutesPerDay = 24 * 60

var (
	ErrInvalidTimeOfDay   = errs.Mark(errors.New("time of day must be HH:MM between 00:00 and 24:00"), errs.ErrValidation)
	ErrInvalidTimeWindow  = errs.Mark(errors.New("start time must be before end time"), errs.ErrValidation)
	ErrInvalidWeekday     = errs.Mark(errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)"), errs.ErrValidation)
	ErrInvalidDuration    = errs.Mark(errors.New("slot duration must be positive"), errs.ErrValidation)
	ErrInvalidValidity    = errs.Mark(errors.New("valid_until cannot be before valid_from"), errs.ErrValidation)
	ErrPatternDeleted     = errs.Mark(errors.New("pattern is already deleted"), errs.ErrInvalidState)
	ErrPropertyIDRequired = errs.Mark(errors.New("property id is required"), errs.ErrValidation)
)

// TimeOfDay is a local wall-clock time expressed in minutes since midnight.
// 24:00 is accepted as an end-of-day marker.
type TimeOfDay int

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "24:00" {
		return TimeOfDay(minutesPerDay), nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func NewTimeOfDay(minutes int) (TimeOfDay, error) {
	if minutes < 0 || minutes > minutesPerDay {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(minutes), nil
}

func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// TimeWindow is the half-open local range [start, end) a pattern is bookable in.
type TimeWindow struct {
	start TimeOfDay
	end   TimeOfDay
}

func NewTimeWindow(start, end TimeOfDay) (TimeWindow, error) {
	if start >= end {
		return TimeWindow{}, ErrInvalidTimeWindow
	}
	if start >= minutesPerDay {
		return TimeWindow{}, ErrInvalidTimeOfDay
	}
	return TimeWindow{start: start, end: end}, nil
}

func (w TimeWindow) Start() TimeOfDay { return w.start }
func (w TimeWindow) End() TimeOfDay   { return w.end }

func (w TimeWindow) Minutes() int {
	return int(w.end - w.start)
}

func NewWeekday(d int) (time.Weekday, error) {
	if d < int(time.Sunday) || d > int(time.Saturday) {
		return 0, ErrInvalidWeekday
	}
	return time.Weekday(d), nil
}

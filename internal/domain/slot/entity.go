package slot

import (
	"errors"
	"fmt"
	"time"

	"visit-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrSlotInPast = errs.Mark(errors.New("slot start must be in the future"), errs.ErrValidation)
)

type VisitSlot struct {
	id         uuid.UUID
	propertyID uuid.UUID
	patternID  *uuid.UUID
	interval   Interval
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

func NewOpenSlot(propertyID uuid.UUID, patternID *uuid.UUID, interval Interval, now time.Time) *VisitSlot {
	return &VisitSlot{
		id:         uuid.New(),
		propertyID: propertyID,
		patternID:  patternID,
		interval:   interval,
		status:     StatusOpen,
		createdAt:  now,
		updatedAt:  now,
	}
}

// NewAdHocSlot creates an OPEN slot that no pattern produced.
func NewAdHocSlot(propertyID uuid.UUID, start, end, now time.Time) (*VisitSlot, error) {
	interval, err := NewInterval(start, end)
	if err != nil {
		return nil, err
	}
	if !interval.Start().After(now) {
		return nil, ErrSlotInPast
	}
	return NewOpenSlot(propertyID, nil, interval, now), nil
}

func ReconstructSlot(
	id, propertyID uuid.UUID,
	patternID *uuid.UUID,
	interval Interval,
	status Status,
	createdAt, updatedAt time.Time,
) *VisitSlot {
	return &VisitSlot{
		id:         id,
		propertyID: propertyID,
		patternID:  patternID,
		interval:   interval,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// TransitionTo applies a state change locally. Persisting it is a compare-and-set
// against the previous status.
func (s *VisitSlot) TransitionTo(next Status, now time.Time) error {
	if !s.status.CanTransitionTo(next) {
		return errs.Mark(fmt.Errorf("slot %s cannot move from %s to %s", s.id, s.status, next), errs.ErrInvalidState)
	}
	s.status = next
	s.updatedAt = now
	return nil
}

// ReleaseTarget is the status a slot falls back to when its booking ends:
// OPEN while it is still ahead, EXPIRED once it has started.
func (s *VisitSlot) ReleaseTarget(now time.Time) Status {
	if s.HasStarted(now) {
		return StatusExpired
	}
	return StatusOpen
}

func (s *VisitSlot) HasStarted(now time.Time) bool {
	return !s.interval.Start().After(now)
}

func (s *VisitSlot) IsBookable(now time.Time) bool {
	return s.status == StatusOpen && !s.HasStarted(now)
}

func (s *VisitSlot) ID() uuid.UUID         { return s.id }
func (s *VisitSlot) PropertyID() uuid.UUID { return s.propertyID }
func (s *VisitSlot) PatternID() *uuid.UUID { return s.patternID }
func (s *VisitSlot) Interval() Interval    { return s.interval }
func (s *VisitSlot) StartAt() time.Time    { return s.interval.Start() }
func (s *VisitSlot) EndAt() time.Time      { return s.interval.End() }
func (s *VisitSlot) Status() Status        { return s.status }
func (s *VisitSlot) CreatedAt() time.Time  { return s.createdAt }
func (s *VisitSlot) UpdatedAt() time.Time  { return s.updatedAt }

package slot

import (
	"errors"
	"iter"
	"slices"
	"time"

	"visit-scheduler/internal/domain/availability"
	"visit-scheduler/internal/pkg/errs"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

const DefaultMaxHorizonDays = 180

var (
	ErrInvalidRange  = errs.Mark(errors.New("range end is before range start"), errs.ErrValidation)
	ErrRangeTooLarge = errs.Mark(errors.New("range exceeds the maximum horizon"), errs.ErrValidation)
)

// ExpandInput carries everything the expander reads. Existing must hold every
// stored slot of the property that can intersect the range; the expander never
// looks anything up on its own.
type ExpandInput struct {
	PropertyID     uuid.UUID
	Patterns       []*availability.Pattern
	Existing       []*VisitSlot
	From           civil.Date // inclusive, property-local
	To             civil.Date // inclusive, property-local
	Location       *time.Location
	Now            time.Time
	MaxHorizonDays int
}

func (in ExpandInput) validate() error {
	return ValidateRange(in.From, in.To, in.MaxHorizonDays)
}

// ValidateRange checks an inclusive local-date range against the horizon.
// maxDays <= 0 means DefaultMaxHorizonDays.
func ValidateRange(from, to civil.Date, maxDays int) error {
	if to.Before(from) {
		return ErrInvalidRange
	}
	if maxDays <= 0 {
		maxDays = DefaultMaxHorizonDays
	}
	if to.DaysSince(from)+1 > maxDays {
		return ErrRangeTooLarge
	}
	return nil
}

// Expand returns the OPEN slots that patterns would add for the range. The
// sequence is lazy and can be ranged over any number of times; each pass
// yields the same intervals for the same input.
//
// An interval is skipped when a stored slot already starts at the same
// instant, when it overlaps a stored OPEN/RESERVED/CONFIRMED slot, when it
// overlaps an interval yielded earlier in the pass, or when it does not start
// after Now. Patterns are visited in ascending id order, so on overlapping
// patterns the lowest id wins.
func Expand(in ExpandInput) (iter.Seq[*VisitSlot], error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}

	patterns := make([]*availability.Pattern, 0, len(in.Patterns))
	for _, p := range in.Patterns {
		if p.IsActive() && p.PropertyID() == in.PropertyID {
			patterns = append(patterns, p)
		}
	}
	slices.SortFunc(patterns, func(a, b *availability.Pattern) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})

	return func(yield func(*VisitSlot) bool) {
		starts := make(map[int64]struct{}, len(in.Existing))
		var occupied []Interval
		for _, s := range in.Existing {
			if s.PropertyID() != in.PropertyID {
				continue
			}
			starts[s.StartAt().UnixNano()] = struct{}{}
			if s.Status().Blocks() {
				occupied = append(occupied, s.Interval())
			}
		}

		for _, p := range patterns {
			from, to, ok := p.ClipToValidity(in.From, in.To)
			if !ok {
				continue
			}
			patternID := p.ID()
			for d := p.FirstOccurrence(from); !d.After(to); d = d.AddDays(7) {
				for _, tile := range p.Tiles(d, loc) {
					iv, err := NewInterval(tile.Start, tile.End)
					if err != nil || !iv.Start().After(in.Now) {
						continue
					}
					if _, taken := starts[iv.Start().UnixNano()]; taken {
						continue
					}
					if overlapsAny(iv, occupied) {
						continue
					}
					starts[iv.Start().UnixNano()] = struct{}{}
					occupied = append(occupied, iv)
					if !yield(NewOpenSlot(in.PropertyID, &patternID, iv, in.Now)) {
						return
					}
				}
			}
		}
	}, nil
}

// SnapshotBounds returns the UTC window a caller must load existing slots for
// so that Expand sees every slot that can collide with the range. It pads a
// day on each side to absorb time zone offsets and windows ending at 24:00.
func SnapshotBounds(from, to civil.Date, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	return from.AddDays(-1).In(loc).UTC(), to.AddDays(2).In(loc).UTC()
}

func overlapsAny(iv Interval, others []Interval) bool {
	for _, o := range others {
		if iv.Overlaps(o) {
			return true
		}
	}
	return false
}

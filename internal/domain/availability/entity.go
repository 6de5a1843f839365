package availability

import (
	"bytes"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

type PatternSpec struct {
	PropertyID          uuid.UUID
	Weekday             int
	StartTime           string
	EndTime             string
	SlotDurationMinutes int
	ValidFrom           civil.Date
	ValidUntil          *civil.Date
}

// Pattern is an owner-defined recurring availability rule for one property.
type Pattern struct {
	id           uuid.UUID
	propertyID   uuid.UUID
	weekday      time.Weekday
	window       TimeWindow
	slotDuration int // minutes
	validFrom    civil.Date
	validUntil   *civil.Date
	createdAt    time.Time
	deletedAt    *time.Time
}

// NewPattern validates spec and assigns a time-ordered id, so comparing ids
// orders patterns by creation.
func NewPattern(spec PatternSpec, now time.Time) (*Pattern, error) {
	if spec.PropertyID == uuid.Nil {
		return nil, ErrPropertyIDRequired
	}
	weekday, err := NewWeekday(spec.Weekday)
	if err != nil {
		return nil, err
	}
	start, err := ParseTimeOfDay(spec.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseTimeOfDay(spec.EndTime)
	if err != nil {
		return nil, err
	}
	window, err := NewTimeWindow(start, end)
	if err != nil {
		return nil, err
	}
	if spec.SlotDurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if !spec.ValidFrom.IsValid() {
		return nil, ErrInvalidValidity
	}
	if spec.ValidUntil != nil && (!spec.ValidUntil.IsValid() || spec.ValidUntil.Before(spec.ValidFrom)) {
		return nil, ErrInvalidValidity
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	return &Pattern{
		id:           id,
		propertyID:   spec.PropertyID,
		weekday:      weekday,
		window:       window,
		slotDuration: spec.SlotDurationMinutes,
		validFrom:    spec.ValidFrom,
		validUntil:   spec.ValidUntil,
		createdAt:    now,
	}, nil
}

func ReconstructPattern(
	id, propertyID uuid.UUID,
	weekday time.Weekday,
	window TimeWindow,
	slotDurationMinutes int,
	validFrom civil.Date,
	validUntil *civil.Date,
	createdAt time.Time,
	deletedAt *time.Time,
) *Pattern {
	return &Pattern{
		id:           id,
		propertyID:   propertyID,
		weekday:      weekday,
		window:       window,
		slotDuration: slotDurationMinutes,
		validFrom:    validFrom,
		validUntil:   validUntil,
		createdAt:    createdAt,
		deletedAt:    deletedAt,
	}
}

func (p *Pattern) IsActive() bool {
	return p.deletedAt == nil
}

// Delete stops future expansion; slots already materialized are untouched.
func (p *Pattern) Delete(now time.Time) error {
	if p.deletedAt != nil {
		return ErrPatternDeleted
	}
	p.deletedAt = &now
	return nil
}

// ClipToValidity intersects [from, to] with the validity window.
func (p *Pattern) ClipToValidity(from, to civil.Date) (civil.Date, civil.Date, bool) {
	if from.Before(p.validFrom) {
		from = p.validFrom
	}
	if p.validUntil != nil && to.After(*p.validUntil) {
		to = *p.validUntil
	}
	if to.Before(from) {
		return civil.Date{}, civil.Date{}, false
	}
	return from, to, true
}

// FirstOccurrence returns the first date on or after d that falls on the pattern's weekday.
func (p *Pattern) FirstOccurrence(d civil.Date) civil.Date {
	offset := (int(p.weekday) - int(d.In(time.UTC).Weekday()) + 7) % 7
	return d.AddDays(offset)
}

// Tiles cuts the window on date d into consecutive slot-sized intervals in loc.
// A trailing remainder shorter than the slot duration is discarded.
func (p *Pattern) Tiles(d civil.Date, loc *time.Location) []Tile {
	count := p.window.Minutes() / p.slotDuration
	tiles := make([]Tile, 0, count)
	for i := range count {
		startMin := int(p.window.start) + i*p.slotDuration
		endMin := startMin + p.slotDuration
		start := time.Date(d.Year, d.Month, d.Day, 0, startMin, 0, 0, loc).UTC()
		end := time.Date(d.Year, d.Month, d.Day, 0, endMin, 0, 0, loc).UTC()
		// Wall-clock gaps around DST shifts can collapse a tile
		if !start.Before(end) {
			continue
		}
		tiles = append(tiles, Tile{Start: start, End: end})
	}
	return tiles
}

// Less orders patterns by id, which for v7 ids is creation order.
func (p *Pattern) Less(other *Pattern) bool {
	return bytes.Compare(p.id[:], other.id[:]) < 0
}

func (p *Pattern) ID() uuid.UUID            { return p.id }
func (p *Pattern) PropertyID() uuid.UUID    { return p.propertyID }
func (p *Pattern) Weekday() time.Weekday    { return p.weekday }
func (p *Pattern) Window() TimeWindow       { return p.window }
func (p *Pattern) SlotDurationMinutes() int { return p.slotDuration }
func (p *Pattern) ValidFrom() civil.Date    { return p.validFrom }
func (p *Pattern) ValidUntil() *civil.Date  { return p.validUntil }
func (p *Pattern) CreatedAt() time.Time     { return p.createdAt }
func (p *Pattern) DeletedAt() *time.Time    { return p.deletedAt }

// Tile is one concrete UTC interval cut from a pattern window.
type Tile struct {
	Start time.Time
	End   time.Time
}

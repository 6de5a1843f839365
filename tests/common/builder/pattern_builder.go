//go:build unit || e2e

package builder

import (
	"time"

	"visit-scheduler/internal/domain/availability"
	reqdto "visit-scheduler/internal/handler/dto/request"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

type PatternBuilder struct {
	PropertyID          uuid.UUID
	Weekday             int
	StartTime           string
	EndTime             string
	SlotDurationMinutes int
	ValidFrom           civil.Date
	ValidUntil          *civil.Date
	CreatedAt           time.Time
}

// NewPatternBuilder defaults to Mondays 09:00-11:00 in 30 minute slots from 2025-01-01.
func NewPatternBuilder() *PatternBuilder {
	return &PatternBuilder{
		PropertyID:          uuid.New(),
		Weekday:             int(time.Monday),
		StartTime:           "09:00",
		EndTime:             "11:00",
		SlotDurationMinutes: 30,
		ValidFrom:           civil.Date{Year: 2025, Month: time.January, Day: 1},
		CreatedAt:           time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *PatternBuilder) With(mutate func(*PatternBuilder)) *PatternBuilder {
	mutate(b)
	return b
}

func (b *PatternBuilder) WithProperty(id uuid.UUID) *PatternBuilder {
	b.PropertyID = id
	return b
}

func (b *PatternBuilder) WithWindow(start, end string, minutes int) *PatternBuilder {
	b.StartTime = start
	b.EndTime = end
	b.SlotDurationMinutes = minutes
	return b
}

func (b *PatternBuilder) Spec() availability.PatternSpec {
	return availability.PatternSpec{
		PropertyID:          b.PropertyID,
		Weekday:             b.Weekday,
		StartTime:           b.StartTime,
		EndTime:             b.EndTime,
		SlotDurationMinutes: b.SlotDurationMinutes,
		ValidFrom:           b.ValidFrom,
		ValidUntil:          b.ValidUntil,
	}
}

func (b *PatternBuilder) BuildDomain() (*availability.Pattern, error) {
	return availability.NewPattern(b.Spec(), b.CreatedAt)
}

func (b *PatternBuilder) MustBuildDomain() *availability.Pattern {
	p, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return p
}

func (b *PatternBuilder) BuildCreateRequestDTO() reqdto.CreatePatternRequest {
	weekday := b.Weekday
	req := reqdto.CreatePatternRequest{
		Weekday:             &weekday,
		StartTime:           b.StartTime,
		EndTime:             b.EndTime,
		SlotDurationMinutes: b.SlotDurationMinutes,
		ValidFrom:           b.ValidFrom.String(),
	}
	if b.ValidUntil != nil {
		s := b.ValidUntil.String()
		req.ValidUntil = &s
	}
	return req
}

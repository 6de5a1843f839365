package property

import (
	"time"

	"github.com/google/uuid"
)

// Property is the read-only slice of the property record scheduling needs.
// The record itself belongs to the listings side of the application.
type Property struct {
	id       uuid.UUID
	ownerID  uuid.UUID
	location *time.Location
}

// NewProperty resolves timeZone, falling back to fallback when it is empty or unknown.
func NewProperty(id, ownerID uuid.UUID, timeZone string, fallback *time.Location) *Property {
	loc := fallback
	if timeZone != "" {
		if l, err := time.LoadLocation(timeZone); err == nil {
			loc = l
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Property{id: id, ownerID: ownerID, location: loc}
}

func (p *Property) IsOwnedBy(actor uuid.UUID) bool {
	return actor != uuid.Nil && p.ownerID == actor
}

// CanManageBooking is true for the booking's visitor and the property owner.
func (p *Property) CanManageBooking(actor, visitorID uuid.UUID) bool {
	return actor != uuid.Nil && (actor == visitorID || p.IsOwnedBy(actor))
}

func (p *Property) ID() uuid.UUID            { return p.id }
func (p *Property) OwnerID() uuid.UUID       { return p.ownerID }
func (p *Property) Location() *time.Location { return p.location }

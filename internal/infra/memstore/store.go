// Package memstore is an in-process implementation of the scheduling unit of
// work. Each repository call is atomic; a transaction keeps an undo log so a
// failed unit rolls back its own writes. Uniqueness, exclusion and
// compare-and-set rules mirror the Postgres schema.
//
// There is no snapshot isolation: a write is visible to other transactions
// before its unit finishes. Units that change slot or booking status take the
// property lock first, so they never observe each other's uncommitted state;
// plain reads can.
package memstore

import (
	"context"
	"sync"
	"time"

	"visit-scheduler/internal/domain/availability"
	"visit-scheduler/internal/domain/booking"
	"visit-scheduler/internal/domain/property"
	"visit-scheduler/internal/domain/slot"
	"visit-scheduler/internal/pkg/keylock"
	"visit-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type slotKey struct {
	propertyID uuid.UUID
	start      int64
}

type slotRecord struct {
	id         uuid.UUID
	propertyID uuid.UUID
	patternID  *uuid.UUID
	interval   slot.Interval
	status     slot.Status
	createdAt  time.Time
	updatedAt  time.Time
}

func (r *slotRecord) toDomain() *slot.VisitSlot {
	return slot.ReconstructSlot(r.id, r.propertyID, r.patternID, r.interval, r.status, r.createdAt, r.updatedAt)
}

func (r *slotRecord) key() slotKey {
	return slotKey{propertyID: r.propertyID, start: r.interval.Start().UnixNano()}
}

type bookingRecord struct {
	id         uuid.UUID
	slotID     uuid.UUID
	visitorID  uuid.UUID
	propertyID uuid.UUID
	status     booking.Status
	createdAt  time.Time
	expiresAt  time.Time
	updatedAt  time.Time
}

func (r *bookingRecord) toDomain() *booking.Booking {
	return booking.ReconstructBooking(r.id, r.slotID, r.visitorID, r.propertyID, r.status, r.createdAt, r.expiresAt, r.updatedAt)
}

type Store struct {
	mu       sync.Mutex
	locks    *keylock.Locker
	fallback *time.Location

	properties map[uuid.UUID]*property.Property
	patterns   map[uuid.UUID]*availability.Pattern
	slots      map[uuid.UUID]*slotRecord
	slotStarts map[slotKey]uuid.UUID
	bookings   map[uuid.UUID]*bookingRecord
}

var _ shared.UnitOfWork = (*Store)(nil)

// New returns an empty store. fallback is the time zone given to properties
// registered without one.
func New(fallback *time.Location) *Store {
	if fallback == nil {
		fallback = time.UTC
	}
	return &Store{
		locks:      keylock.New(),
		fallback:   fallback,
		properties: make(map[uuid.UUID]*property.Property),
		patterns:   make(map[uuid.UUID]*availability.Pattern),
		slots:      make(map[uuid.UUID]*slotRecord),
		slotStarts: make(map[slotKey]uuid.UUID),
		bookings:   make(map[uuid.UUID]*bookingRecord),
	}
}

// PutProperty registers or replaces the property record. Properties are owned
// by the listings side, so this is the only way they enter the store.
func (s *Store) PutProperty(id, ownerID uuid.UUID, timeZone string) *property.Property {
	p := property.NewProperty(id, ownerID, timeZone, s.fallback)
	s.mu.Lock()
	s.properties[id] = p
	s.mu.Unlock()
	return p
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.run(ctx, false, fn)
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.run(ctx, true, fn)
}

func (s *Store) run(ctx context.Context, readOnly bool, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{store: s, readOnly: readOnly}
	defer tx.releaseLocks()

	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

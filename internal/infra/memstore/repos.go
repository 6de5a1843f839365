package memstore

import (
	"bytes"
	"context"
	"slices"
	"time"

	"visit-scheduler/internal/domain/availability"
	"visit-scheduler/internal/domain/booking"
	"visit-scheduler/internal/domain/property"
	"visit-scheduler/internal/domain/slot"
	"visit-scheduler/internal/infra"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Properties
// -----------------------------------------------------------------------------

type propertyRepo struct {
	tx *memTx
}

func (r *propertyRepo) FindByID(_ context.Context, id uuid.UUID) (*property.Property, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.properties[id]
	if !ok {
		return nil, infra.WrapRepoErr("property not found", nil, infra.KindNotFound)
	}
	return p, nil
}

// -----------------------------------------------------------------------------
// Availability patterns
// -----------------------------------------------------------------------------

type patternRepo struct {
	tx *memTx
}

func clonePattern(p *availability.Pattern) *availability.Pattern {
	var deletedAt *time.Time
	if d := p.DeletedAt(); d != nil {
		v := *d
		deletedAt = &v
	}
	var validUntil *civil.Date
	if u := p.ValidUntil(); u != nil {
		v := *u
		validUntil = &v
	}
	return availability.ReconstructPattern(
		p.ID(), p.PropertyID(), p.Weekday(), p.Window(), p.SlotDurationMinutes(),
		p.ValidFrom(), validUntil, p.CreatedAt(), deletedAt,
	)
}

func (r *patternRepo) Create(_ context.Context, p *availability.Pattern) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := s.properties[p.PropertyID()]; !ok {
		return infra.WrapRepoErr("property not found", nil, infra.KindNotFound)
	}
	if _, ok := s.patterns[p.ID()]; ok {
		return infra.WrapConstraintErr("availability pattern already exists", nil, infra.KindDuplicateKey, "availability_patterns_pkey")
	}

	stored := clonePattern(p)
	s.patterns[p.ID()] = stored
	r.tx.onRollback(func() {
		if s.patterns[stored.ID()] == stored {
			delete(s.patterns, stored.ID())
		}
	})
	return nil
}

func (r *patternRepo) FindByID(_ context.Context, id uuid.UUID) (*availability.Pattern, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.patterns[id]
	if !ok {
		return nil, infra.WrapRepoErr("availability pattern not found", nil, infra.KindNotFound)
	}
	return clonePattern(p), nil
}

func (r *patternRepo) ListByProperty(_ context.Context, propertyID uuid.UUID, includeDeleted bool) ([]*availability.Pattern, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*availability.Pattern
	for _, p := range s.patterns {
		if p.PropertyID() != propertyID || (!includeDeleted && !p.IsActive()) {
			continue
		}
		result = append(result, clonePattern(p))
	}
	slices.SortFunc(result, func(a, b *availability.Pattern) int {
		return compareUUID(a.ID(), b.ID())
	})
	return result, nil
}

func (r *patternRepo) MarkDeleted(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := r.tx.writable(); err != nil {
		return false, err
	}
	prev, ok := s.patterns[id]
	if !ok || !prev.IsActive() {
		return false, nil
	}

	next := clonePattern(prev)
	if err := next.Delete(at); err != nil {
		return false, nil
	}
	s.patterns[id] = next
	r.tx.onRollback(func() {
		if s.patterns[id] == next {
			s.patterns[id] = prev
		}
	})
	return true, nil
}

// -----------------------------------------------------------------------------
// Visit slots
// -----------------------------------------------------------------------------

type slotRepo struct {
	tx *memTx
}

func (r *slotRepo) FindByID(_ context.Context, id uuid.UUID) (*slot.VisitSlot, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.slots[id]
	if !ok {
		return nil, infra.WrapRepoErr("visit slot not found", nil, infra.KindNotFound)
	}
	return rec.toDomain(), nil
}

func (r *slotRepo) ListByPropertyBetween(_ context.Context, propertyID uuid.UUID, from, to time.Time, statuses ...slot.Status) ([]*slot.VisitSlot, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var recs []*slotRecord
	for _, rec := range s.slots {
		if rec.propertyID != propertyID {
			continue
		}
		if !rec.interval.Start().Before(to) || !rec.interval.End().After(from) {
			continue
		}
		if len(statuses) > 0 && !slices.Contains(statuses, rec.status) {
			continue
		}
		recs = append(recs, rec)
	}
	slices.SortFunc(recs, func(a, b *slotRecord) int {
		return a.interval.Start().Compare(b.interval.Start())
	})

	result := make([]*slot.VisitSlot, len(recs))
	for i, rec := range recs {
		result[i] = rec.toDomain()
	}
	return result, nil
}

func (r *slotRepo) InsertIfAbsent(_ context.Context, slots []*slot.VisitSlot) (int, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := r.tx.writable(); err != nil {
		return 0, err
	}

	inserted := 0
	for _, vs := range slots {
		rec := newSlotRecord(vs)
		if _, taken := s.slotStarts[rec.key()]; taken {
			continue
		}
		if _, taken := s.slots[rec.id]; taken {
			continue
		}
		if rec.status.IsLive() && s.liveOverlapLocked(rec.propertyID, rec.interval, rec.id) {
			return inserted, infra.WrapConstraintErr("failed to materialize visit slots", nil, infra.KindConflict, infra.ConstraintSlotNoLiveOverlap)
		}
		r.insertLocked(rec)
		inserted++
	}
	return inserted, nil
}

func (r *slotRepo) Insert(_ context.Context, vs *slot.VisitSlot) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := s.properties[vs.PropertyID()]; !ok {
		return infra.WrapRepoErr("property not found", nil, infra.KindNotFound)
	}

	rec := newSlotRecord(vs)
	if _, taken := s.slotStarts[rec.key()]; taken {
		return infra.WrapConstraintErr("failed to insert visit slot", nil, infra.KindDuplicateKey, infra.ConstraintSlotStartUnique)
	}
	if rec.status.IsLive() && s.liveOverlapLocked(rec.propertyID, rec.interval, rec.id) {
		return infra.WrapConstraintErr("failed to insert visit slot", nil, infra.KindConflict, infra.ConstraintSlotNoLiveOverlap)
	}
	r.insertLocked(rec)
	return nil
}

func (r *slotRepo) HasOverlap(_ context.Context, propertyID uuid.UUID, iv slot.Interval, excludeID uuid.UUID, statuses ...slot.Status) (bool, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.slots {
		if rec.propertyID != propertyID || rec.id == excludeID {
			continue
		}
		if slices.Contains(statuses, rec.status) && rec.interval.Overlaps(iv) {
			return true, nil
		}
	}
	return false, nil
}

func (r *slotRepo) CompareAndSetStatus(_ context.Context, id uuid.UUID, expected, next slot.Status, at time.Time) (bool, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := r.tx.writable(); err != nil {
		return false, err
	}
	rec, ok := s.slots[id]
	if !ok || rec.status != expected {
		return false, nil
	}
	if next.IsLive() && !expected.IsLive() && s.liveOverlapLocked(rec.propertyID, rec.interval, rec.id) {
		return false, infra.WrapConstraintErr("failed to update visit slot status", nil, infra.KindConflict, infra.ConstraintSlotNoLiveOverlap)
	}

	r.setStatusLocked(rec, next, at)
	return true, nil
}

func (r *slotRepo) PropertiesNeedingSweep(_ context.Context, now time.Time, confirmedCutoff *time.Time) ([]uuid.UUID, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[uuid.UUID]struct{})
	var result []uuid.UUID
	for _, rec := range s.slots {
		due := rec.status != slot.StatusConfirmed && rec.interval.Start().Before(now)
		if !due && confirmedCutoff != nil {
			due = rec.status == slot.StatusConfirmed && rec.interval.End().Before(*confirmedCutoff)
		}
		if !due {
			continue
		}
		if _, ok := seen[rec.propertyID]; !ok {
			seen[rec.propertyID] = struct{}{}
			result = append(result, rec.propertyID)
		}
	}
	slices.SortFunc(result, compareUUID)
	return result, nil
}

func (r *slotRepo) ExpireStarted(_ context.Context, propertyID uuid.UUID, now time.Time) (int64, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := r.tx.writable(); err != nil {
		return 0, err
	}
	var n int64
	for _, rec := range s.slots {
		if rec.propertyID != propertyID || !rec.interval.Start().Before(now) {
			continue
		}
		if rec.status == slot.StatusOpen || rec.status == slot.StatusReserved {
			r.setStatusLocked(rec, slot.StatusExpired, now)
			n++
		}
	}
	return n, nil
}

func (r *slotRepo) DeleteStarted(_ context.Context, propertyID uuid.UUID, now time.Time) (int64, error) {
	return r.deleteWhere(func(rec *slotRecord) bool {
		return rec.propertyID == propertyID && rec.interval.Start().Before(now) && rec.status.Deletable()
	})
}

func (r *slotRepo) DeleteConfirmedEndedBefore(_ context.Context, propertyID uuid.UUID, cutoff time.Time) (int64, error) {
	return r.deleteWhere(func(rec *slotRecord) bool {
		return rec.propertyID == propertyID && rec.status == slot.StatusConfirmed && rec.interval.End().Before(cutoff)
	})
}

// deleteWhere removes matching slots and, like the foreign key cascade in
// Postgres, every booking attached to them.
func (r *slotRepo) deleteWhere(match func(*slotRecord) bool) (int64, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := r.tx.writable(); err != nil {
		return 0, err
	}

	var n int64
	for id, rec := range s.slots {
		if !match(rec) {
			continue
		}
		delete(s.slots, id)
		delete(s.slotStarts, rec.key())

		var cascaded []*bookingRecord
		for bid, b := range s.bookings {
			if b.slotID == id {
				cascaded = append(cascaded, b)
				delete(s.bookings, bid)
			}
		}

		r.tx.onRollback(func() {
			if _, ok := s.slots[rec.id]; ok {
				return
			}
			if _, ok := s.slotStarts[rec.key()]; ok {
				return
			}
			s.slots[rec.id] = rec
			s.slotStarts[rec.key()] = rec.id
			for _, b := range cascaded {
				if _, ok := s.bookings[b.id]; !ok {
					s.bookings[b.id] = b
				}
			}
		})
		n++
	}
	return n, nil
}

func newSlotRecord(vs *slot.VisitSlot) *slotRecord {
	return &slotRecord{
		id:         vs.ID(),
		propertyID: vs.PropertyID(),
		patternID:  vs.PatternID(),
		interval:   vs.Interval(),
		status:     vs.Status(),
		createdAt:  vs.CreatedAt(),
		updatedAt:  vs.UpdatedAt(),
	}
}

func (r *slotRepo) insertLocked(rec *slotRecord) {
	s := r.tx.store
	s.slots[rec.id] = rec
	s.slotStarts[rec.key()] = rec.id
	r.tx.onRollback(func() {
		if s.slots[rec.id] == rec {
			delete(s.slots, rec.id)
			delete(s.slotStarts, rec.key())
		}
	})
}

func (r *slotRepo) setStatusLocked(rec *slotRecord, next slot.Status, at time.Time) {
	prevStatus, prevUpdated := rec.status, rec.updatedAt
	rec.status = next
	rec.updatedAt = at
	r.tx.onRollback(func() {
		if rec.status == next && rec.updatedAt.Equal(at) {
			rec.status = prevStatus
			rec.updatedAt = prevUpdated
		}
	})
}

func (s *Store) liveOverlapLocked(propertyID uuid.UUID, iv slot.Interval, excludeID uuid.UUID) bool {
	for _, rec := range s.slots {
		if rec.propertyID == propertyID && rec.id != excludeID && rec.status.IsLive() && rec.interval.Overlaps(iv) {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// Bookings
// -----------------------------------------------------------------------------

type bookingRepo struct {
	tx *memTx
}

func (r *bookingRepo) Insert(_ context.Context, b *booking.Booking) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := s.slots[b.SlotID()]; !ok {
		return infra.WrapRepoErr("visit slot not found", nil, infra.KindNotFound)
	}
	if _, ok := s.bookings[b.ID()]; ok {
		return infra.WrapConstraintErr("booking already exists", nil, infra.KindDuplicateKey, "bookings_pkey")
	}

	rec := &bookingRecord{
		id:         b.ID(),
		slotID:     b.SlotID(),
		visitorID:  b.VisitorID(),
		propertyID: b.PropertyID(),
		status:     b.Status(),
		createdAt:  b.CreatedAt(),
		expiresAt:  b.ReservationExpiresAt(),
		updatedAt:  b.UpdatedAt(),
	}
	if rec.status.IsLive() {
		if err := s.checkLiveBookingLocked(rec); err != nil {
			return err
		}
	}

	s.bookings[rec.id] = rec
	r.tx.onRollback(func() {
		if s.bookings[rec.id] == rec {
			delete(s.bookings, rec.id)
		}
	})
	return nil
}

func (r *bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return rec.toDomain(), nil
}

func (r *bookingRepo) FindLiveByVisitorAndProperty(_ context.Context, visitorID, propertyID uuid.UUID) (*booking.Booking, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.bookings {
		if rec.visitorID == visitorID && rec.propertyID == propertyID && rec.status.IsLive() {
			return rec.toDomain(), nil
		}
	}
	return nil, nil
}

func (r *bookingRepo) CompareAndSetStatus(_ context.Context, id uuid.UUID, expected, next booking.Status, at time.Time) (bool, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := r.tx.writable(); err != nil {
		return false, err
	}
	rec, ok := s.bookings[id]
	if !ok || rec.status != expected {
		return false, nil
	}
	if next.IsLive() && !expected.IsLive() {
		if err := s.checkLiveBookingLocked(rec); err != nil {
			return false, err
		}
	}

	prevStatus, prevUpdated := rec.status, rec.updatedAt
	rec.status = next
	rec.updatedAt = at
	r.tx.onRollback(func() {
		if rec.status == next && rec.updatedAt.Equal(at) {
			rec.status = prevStatus
			rec.updatedAt = prevUpdated
		}
	})
	return true, nil
}

func (r *bookingRepo) ListExpiredHolds(_ context.Context, now time.Time, propertyID *uuid.UUID, limit int) ([]*booking.Booking, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var recs []*bookingRecord
	for _, rec := range s.bookings {
		if rec.status != booking.StatusPending || !rec.expiresAt.Before(now) {
			continue
		}
		if propertyID != nil && rec.propertyID != *propertyID {
			continue
		}
		recs = append(recs, rec)
	}
	slices.SortFunc(recs, func(a, b *bookingRecord) int {
		return a.expiresAt.Compare(b.expiresAt)
	})
	return bookingsToDomain(recs, limit), nil
}

func (r *bookingRepo) ExpirePendingOnStartedSlots(_ context.Context, propertyID uuid.UUID, now time.Time) (int64, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := r.tx.writable(); err != nil {
		return 0, err
	}
	var n int64
	for _, rec := range s.bookings {
		if rec.status != booking.StatusPending {
			continue
		}
		sl, ok := s.slots[rec.slotID]
		if !ok || sl.propertyID != propertyID || !sl.interval.Start().Before(now) {
			continue
		}
		prevUpdated := rec.updatedAt
		rec.status = booking.StatusExpired
		rec.updatedAt = now
		r.tx.onRollback(func() {
			if rec.status == booking.StatusExpired && rec.updatedAt.Equal(now) {
				rec.status = booking.StatusPending
				rec.updatedAt = prevUpdated
			}
		})
		n++
	}
	return n, nil
}

func (r *bookingRepo) ListByVisitor(_ context.Context, visitorID uuid.UUID, limit int) ([]*booking.Booking, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var recs []*bookingRecord
	for _, rec := range s.bookings {
		if rec.visitorID == visitorID {
			recs = append(recs, rec)
		}
	}
	slices.SortFunc(recs, func(a, b *bookingRecord) int {
		return b.createdAt.Compare(a.createdAt)
	})
	return bookingsToDomain(recs, limit), nil
}

// checkLiveBookingLocked enforces the two partial unique indexes on live bookings.
func (s *Store) checkLiveBookingLocked(rec *bookingRecord) error {
	for _, other := range s.bookings {
		if other.id == rec.id || !other.status.IsLive() {
			continue
		}
		if other.slotID == rec.slotID {
			return infra.WrapConstraintErr("slot already has a live booking", nil, infra.KindDuplicateKey, infra.ConstraintBookingLiveSlot)
		}
		if other.visitorID == rec.visitorID && other.propertyID == rec.propertyID {
			return infra.WrapConstraintErr("visitor already has a live booking", nil, infra.KindDuplicateKey, infra.ConstraintBookingLiveVisitor)
		}
	}
	return nil
}

func bookingsToDomain(recs []*bookingRecord, limit int) []*booking.Booking {
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	result := make([]*booking.Booking, len(recs))
	for i, rec := range recs {
		result[i] = rec.toDomain()
	}
	return result
}

func compareUUID(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

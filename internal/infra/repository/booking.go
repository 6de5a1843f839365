package repository

import (
	"context"
	"time"

	"visit-scheduler/internal/domain/booking"
	"visit-scheduler/internal/infra"
	"visit-scheduler/internal/infra/db"
	"visit-scheduler/internal/infra/repository/converter"
	"visit-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `id, slot_id, visitor_id, property_id, status, created_at, reservation_expires_at, updated_at`

const (
	insertBooking = `
INSERT INTO bookings (` + bookingColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	findBookingByID = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE id = $1`

	findLiveBookingByVisitor = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE visitor_id = $1 AND property_id = $2 AND status IN ('PENDING', 'CONFIRMED')
LIMIT 1`

	casBookingStatus = `
UPDATE bookings
SET status = $3, updated_at = $4
WHERE id = $1 AND status = $2`

	listExpiredHolds = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE status = 'PENDING'
  AND reservation_expires_at < $1
  AND ($2::uuid IS NULL OR property_id = $2)
ORDER BY reservation_expires_at
LIMIT $3`

	expirePendingOnStartedSlots = `
UPDATE bookings b
SET status = 'EXPIRED', updated_at = $2
FROM visit_slots s
WHERE b.slot_id = s.id
  AND s.property_id = $1
  AND s.start_at < $2
  AND b.status = 'PENDING'`

	listBookingsByVisitor = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE visitor_id = $1
ORDER BY created_at DESC
LIMIT $2`
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	_, err := r.db.Exec(ctx, insertBooking,
		b.ID(), b.SlotID(), b.VisitorID(), b.PropertyID(), b.Status().String(),
		b.CreatedAt(), b.ReservationExpiresAt(), b.UpdatedAt(),
	)
	if err != nil {
		return classifyWriteErr("failed to insert booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	rows, _ := r.db.Query(ctx, findBookingByID, id)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.BookingRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return bookingFromRow(row)
}

func (r *BookingRepository) FindLiveByVisitorAndProperty(ctx context.Context, visitorID, propertyID uuid.UUID) (*booking.Booking, error) {
	rows, _ := r.db.Query(ctx, findLiveBookingByVisitor, visitorID, propertyID)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.BookingRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find live booking", err)
	}
	return bookingFromRow(row)
}

func (r *BookingRepository) CompareAndSetStatus(ctx context.Context, id uuid.UUID, expected, next booking.Status, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, casBookingStatus, id, expected.String(), next.String(), at)
	if err != nil {
		return false, classifyWriteErr("failed to update booking status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BookingRepository) ListExpiredHolds(ctx context.Context, now time.Time, propertyID *uuid.UUID, limit int) ([]*booking.Booking, error) {
	rows, _ := r.db.Query(ctx, listExpiredHolds, now, pgconv.UUIDPtrToPgtype(propertyID), limit)
	return collectBookings(rows, "failed to list expired holds")
}

func (r *BookingRepository) ExpirePendingOnStartedSlots(ctx context.Context, propertyID uuid.UUID, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, expirePendingOnStartedSlots, propertyID, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire holds on started slots", err)
	}
	return tag.RowsAffected(), nil
}

func (r *BookingRepository) ListByVisitor(ctx context.Context, visitorID uuid.UUID, limit int) ([]*booking.Booking, error) {
	rows, _ := r.db.Query(ctx, listBookingsByVisitor, visitorID, limit)
	return collectBookings(rows, "failed to list bookings by visitor")
}

func collectBookings(rows pgx.Rows, msg string) ([]*booking.Booking, error) {
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.BookingRow])
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}

	result := make([]*booking.Booking, 0, len(collected))
	for _, row := range collected {
		b, err := bookingFromRow(row)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, nil
}

func bookingFromRow(row converter.BookingRow) (*booking.Booking, error) {
	b, err := converter.BookingFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt booking row", err)
	}
	return b, nil
}

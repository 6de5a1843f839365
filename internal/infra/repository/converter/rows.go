package converter

import (
	"fmt"

	"visit-scheduler/internal/domain/availability"
	"visit-scheduler/internal/domain/booking"
	"visit-scheduler/internal/domain/slot"
	"visit-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PropertyRow struct {
	ID       uuid.UUID `db:"id"`
	OwnerID  uuid.UUID `db:"owner_id"`
	TimeZone string    `db:"time_zone"`
}

type PatternRow struct {
	ID                  uuid.UUID          `db:"id"`
	PropertyID          uuid.UUID          `db:"property_id"`
	Weekday             int16              `db:"weekday"`
	StartTime           pgtype.Time        `db:"start_time"`
	EndTime             pgtype.Time        `db:"end_time"`
	SlotDurationMinutes int32              `db:"slot_duration_minutes"`
	ValidFrom           pgtype.Date        `db:"valid_from"`
	ValidUntil          pgtype.Date        `db:"valid_until"`
	CreatedAt           pgtype.Timestamptz `db:"created_at"`
	DeletedAt           pgtype.Timestamptz `db:"deleted_at"`
}

type SlotRow struct {
	ID         uuid.UUID          `db:"id"`
	PropertyID uuid.UUID          `db:"property_id"`
	PatternID  pgtype.UUID        `db:"pattern_id"`
	StartAt    pgtype.Timestamptz `db:"start_at"`
	EndAt      pgtype.Timestamptz `db:"end_at"`
	Status     string             `db:"status"`
	CreatedAt  pgtype.Timestamptz `db:"created_at"`
	UpdatedAt  pgtype.Timestamptz `db:"updated_at"`
}

type BookingRow struct {
	ID                   uuid.UUID          `db:"id"`
	SlotID               uuid.UUID          `db:"slot_id"`
	VisitorID            uuid.UUID          `db:"visitor_id"`
	PropertyID           uuid.UUID          `db:"property_id"`
	Status               string             `db:"status"`
	CreatedAt            pgtype.Timestamptz `db:"created_at"`
	ReservationExpiresAt pgtype.Timestamptz `db:"reservation_expires_at"`
	UpdatedAt            pgtype.Timestamptz `db:"updated_at"`
}

func PatternFromRow(row PatternRow) (*availability.Pattern, error) {
	start, err := availability.NewTimeOfDay(pgconv.MinutesFromPgtime(row.StartTime))
	if err != nil {
		return nil, fmt.Errorf("pattern %s: %w", row.ID, err)
	}
	end, err := availability.NewTimeOfDay(pgconv.MinutesFromPgtime(row.EndTime))
	if err != nil {
		return nil, fmt.Errorf("pattern %s: %w", row.ID, err)
	}
	window, err := availability.NewTimeWindow(start, end)
	if err != nil {
		return nil, fmt.Errorf("pattern %s: %w", row.ID, err)
	}
	weekday, err := availability.NewWeekday(int(row.Weekday))
	if err != nil {
		return nil, fmt.Errorf("pattern %s: %w", row.ID, err)
	}

	return availability.ReconstructPattern(
		row.ID,
		row.PropertyID,
		weekday,
		window,
		int(row.SlotDurationMinutes),
		pgconv.DateFromPgtype(row.ValidFrom),
		pgconv.DatePtrFromPgtype(row.ValidUntil),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimePtrFromPgtype(row.DeletedAt),
	), nil
}

func SlotFromRow(row SlotRow) (*slot.VisitSlot, error) {
	iv, err := slot.NewInterval(pgconv.TimeFromPgtype(row.StartAt), pgconv.TimeFromPgtype(row.EndAt))
	if err != nil {
		return nil, fmt.Errorf("slot %s: %w", row.ID, err)
	}
	status := slot.Status(row.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("slot %s: unknown status %q", row.ID, row.Status)
	}

	return slot.ReconstructSlot(
		row.ID,
		row.PropertyID,
		pgconv.UUIDPtrFromPgtype(row.PatternID),
		iv,
		status,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func BookingFromRow(row BookingRow) (*booking.Booking, error) {
	status := booking.Status(row.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("booking %s: unknown status %q", row.ID, row.Status)
	}

	return booking.ReconstructBooking(
		row.ID,
		row.SlotID,
		row.VisitorID,
		row.PropertyID,
		status,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.ReservationExpiresAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

// PatternToRow is the inverse of PatternFromRow, used for inserts.
func PatternToRow(p *availability.Pattern) PatternRow {
	row := PatternRow{
		ID:                  p.ID(),
		PropertyID:          p.PropertyID(),
		Weekday:             int16(p.Weekday()),
		StartTime:           pgconv.MinutesToPgtime(p.Window().Start().Minutes()),
		EndTime:             pgconv.MinutesToPgtime(p.Window().End().Minutes()),
		SlotDurationMinutes: int32(p.SlotDurationMinutes()), // #nosec G115 -- bounded by the window length
		ValidFrom:           pgconv.DateToPgtype(p.ValidFrom()),
		ValidUntil:          pgconv.DatePtrToPgtype(p.ValidUntil()),
		CreatedAt:           pgtype.Timestamptz{Time: p.CreatedAt(), Valid: true},
		DeletedAt:           pgconv.TimePtrToPgtype(p.DeletedAt()),
	}
	return row
}

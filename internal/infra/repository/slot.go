package repository

import (
	"context"
	"time"

	"visit-scheduler/internal/domain/slot"
	"visit-scheduler/internal/infra"
	"visit-scheduler/internal/infra/db"
	"visit-scheduler/internal/infra/repository/converter"
	"visit-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const slotColumns = `id, property_id, pattern_id, start_at, end_at, status, created_at, updated_at`

const (
	findSlotByID = `
SELECT ` + slotColumns + `
FROM visit_slots
WHERE id = $1`

	listSlotsBetween = `
SELECT ` + slotColumns + `
FROM visit_slots
WHERE property_id = $1
  AND start_at < $3
  AND end_at > $2
  AND ($4::text[] IS NULL OR status = ANY($4))
ORDER BY start_at`

	insertSlotsIfAbsent = `
INSERT INTO visit_slots (` + slotColumns + `)
SELECT * FROM unnest(
	$1::uuid[], $2::uuid[], $3::uuid[], $4::timestamptz[], $5::timestamptz[],
	$6::text[], $7::timestamptz[], $8::timestamptz[]
)
ON CONFLICT (property_id, start_at) DO NOTHING`

	insertSlot = `
INSERT INTO visit_slots (` + slotColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	slotOverlapExists = `
SELECT EXISTS (
	SELECT 1 FROM visit_slots
	WHERE property_id = $1
	  AND id <> $4
	  AND start_at < $3
	  AND end_at > $2
	  AND status = ANY($5)
)`

	casSlotStatus = `
UPDATE visit_slots
SET status = $3, updated_at = $4
WHERE id = $1 AND status = $2`

	propertiesNeedingSweep = `
SELECT DISTINCT property_id
FROM visit_slots
WHERE (start_at < $1 AND status <> 'CONFIRMED')
   OR ($2::timestamptz IS NOT NULL AND status = 'CONFIRMED' AND end_at < $2)
ORDER BY property_id`

	expireStartedSlots = `
UPDATE visit_slots
SET status = 'EXPIRED', updated_at = $2
WHERE property_id = $1 AND start_at < $2 AND status IN ('OPEN', 'RESERVED')`

	deleteStartedSlots = `
DELETE FROM visit_slots
WHERE property_id = $1 AND start_at < $2 AND status IN ('OPEN', 'EXPIRED', 'CANCELLED')`

	deleteConfirmedEndedBefore = `
DELETE FROM visit_slots
WHERE property_id = $1 AND status = 'CONFIRMED' AND end_at < $2`
)

type SlotRepository struct {
	db db.DBTX
}

func NewSlotRepository(dbtx db.DBTX) *SlotRepository {
	return &SlotRepository{db: dbtx}
}

func (r *SlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*slot.VisitSlot, error) {
	rows, _ := r.db.Query(ctx, findSlotByID, id)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.SlotRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("visit slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find visit slot by ID", err)
	}

	s, err := converter.SlotFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt visit slot row", err)
	}
	return s, nil
}

func (r *SlotRepository) ListByPropertyBetween(ctx context.Context, propertyID uuid.UUID, from, to time.Time, statuses ...slot.Status) ([]*slot.VisitSlot, error) {
	rows, _ := r.db.Query(ctx, listSlotsBetween, propertyID, from, to, statusStrings(statuses))
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.SlotRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list visit slots", err)
	}

	result := make([]*slot.VisitSlot, 0, len(collected))
	for _, row := range collected {
		s, err := converter.SlotFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt visit slot row", err)
		}
		result = append(result, s)
	}
	return result, nil
}

func (r *SlotRepository) InsertIfAbsent(ctx context.Context, slots []*slot.VisitSlot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	n := len(slots)
	ids := make([]uuid.UUID, n)
	propertyIDs := make([]uuid.UUID, n)
	patternIDs := make([]pgtype.UUID, n)
	starts := make([]time.Time, n)
	ends := make([]time.Time, n)
	statuses := make([]string, n)
	created := make([]time.Time, n)
	updated := make([]time.Time, n)
	for i, s := range slots {
		ids[i] = s.ID()
		propertyIDs[i] = s.PropertyID()
		patternIDs[i] = pgconv.UUIDPtrToPgtype(s.PatternID())
		starts[i] = s.StartAt()
		ends[i] = s.EndAt()
		statuses[i] = s.Status().String()
		created[i] = s.CreatedAt()
		updated[i] = s.UpdatedAt()
	}

	tag, err := r.db.Exec(ctx, insertSlotsIfAbsent, ids, propertyIDs, patternIDs, starts, ends, statuses, created, updated)
	if err != nil {
		return 0, classifyWriteErr("failed to materialize visit slots", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *SlotRepository) Insert(ctx context.Context, s *slot.VisitSlot) error {
	_, err := r.db.Exec(ctx, insertSlot,
		s.ID(), s.PropertyID(), pgconv.UUIDPtrToPgtype(s.PatternID()),
		s.StartAt(), s.EndAt(), s.Status().String(), s.CreatedAt(), s.UpdatedAt(),
	)
	if err != nil {
		return classifyWriteErr("failed to insert visit slot", err)
	}
	return nil
}

func (r *SlotRepository) HasOverlap(ctx context.Context, propertyID uuid.UUID, iv slot.Interval, excludeID uuid.UUID, statuses ...slot.Status) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, slotOverlapExists, propertyID, iv.Start(), iv.End(), excludeID, statusStrings(statuses)).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check visit slot overlap", err)
	}
	return exists, nil
}

func (r *SlotRepository) CompareAndSetStatus(ctx context.Context, id uuid.UUID, expected, next slot.Status, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, casSlotStatus, id, expected.String(), next.String(), at)
	if err != nil {
		return false, classifyWriteErr("failed to update visit slot status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *SlotRepository) PropertiesNeedingSweep(ctx context.Context, now time.Time, confirmedCutoff *time.Time) ([]uuid.UUID, error) {
	rows, _ := r.db.Query(ctx, propertiesNeedingSweep, now, pgconv.TimePtrToPgtype(confirmedCutoff))
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list properties to sweep", err)
	}
	return ids, nil
}

func (r *SlotRepository) ExpireStarted(ctx context.Context, propertyID uuid.UUID, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, expireStartedSlots, propertyID, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire started visit slots", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SlotRepository) DeleteStarted(ctx context.Context, propertyID uuid.UUID, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteStartedSlots, propertyID, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete started visit slots", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SlotRepository) DeleteConfirmedEndedBefore(ctx context.Context, propertyID uuid.UUID, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteConfirmedEndedBefore, propertyID, cutoff)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to archive confirmed visit slots", err)
	}
	return tag.RowsAffected(), nil
}

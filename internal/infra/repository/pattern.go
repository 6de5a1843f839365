package repository

import (
	"context"
	"time"

	"visit-scheduler/internal/domain/availability"
	"visit-scheduler/internal/infra"
	"visit-scheduler/internal/infra/db"
	"visit-scheduler/internal/infra/repository/converter"
	"visit-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const patternColumns = `id, property_id, weekday, start_time, end_time, slot_duration_minutes,
	valid_from, valid_until, created_at, deleted_at`

const (
	createPattern = `
INSERT INTO availability_patterns (` + patternColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	findPatternByID = `
SELECT ` + patternColumns + `
FROM availability_patterns
WHERE id = $1`

	listPatternsByProperty = `
SELECT ` + patternColumns + `
FROM availability_patterns
WHERE property_id = $1 AND ($2 OR deleted_at IS NULL)
ORDER BY id`

	markPatternDeleted = `
UPDATE availability_patterns
SET deleted_at = $2
WHERE id = $1 AND deleted_at IS NULL`
)

type PatternRepository struct {
	db db.DBTX
}

func NewPatternRepository(dbtx db.DBTX) *PatternRepository {
	return &PatternRepository{db: dbtx}
}

func (r *PatternRepository) Create(ctx context.Context, p *availability.Pattern) error {
	row := converter.PatternToRow(p)
	_, err := r.db.Exec(ctx, createPattern,
		row.ID, row.PropertyID, row.Weekday, row.StartTime, row.EndTime, row.SlotDurationMinutes,
		row.ValidFrom, row.ValidUntil, row.CreatedAt, row.DeletedAt,
	)
	if err != nil {
		return classifyWriteErr("failed to create availability pattern", err)
	}
	return nil
}

func (r *PatternRepository) FindByID(ctx context.Context, id uuid.UUID) (*availability.Pattern, error) {
	rows, _ := r.db.Query(ctx, findPatternByID, id)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.PatternRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("availability pattern not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find availability pattern by ID", err)
	}

	p, err := converter.PatternFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt availability pattern row", err)
	}
	return p, nil
}

func (r *PatternRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID, includeDeleted bool) ([]*availability.Pattern, error) {
	rows, _ := r.db.Query(ctx, listPatternsByProperty, propertyID, includeDeleted)
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.PatternRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list availability patterns", err)
	}

	result := make([]*availability.Pattern, 0, len(collected))
	for _, row := range collected {
		p, err := converter.PatternFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt availability pattern row", err)
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *PatternRepository) MarkDeleted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, markPatternDeleted, id, at)
	if err != nil {
		return false, infra.WrapRepoErr("failed to delete availability pattern", err)
	}
	return tag.RowsAffected() == 1, nil
}

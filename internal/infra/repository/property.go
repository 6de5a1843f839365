package repository

import (
	"context"
	"time"

	"visit-scheduler/internal/domain/property"
	"visit-scheduler/internal/infra"
	"visit-scheduler/internal/infra/db"
	"visit-scheduler/internal/infra/repository/converter"
	"visit-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const findPropertyByID = `
SELECT id, owner_id, time_zone
FROM properties
WHERE id = $1`

type PropertyRepository struct {
	db       db.DBTX
	fallback *time.Location
}

func NewPropertyRepository(dbtx db.DBTX, fallback *time.Location) *PropertyRepository {
	return &PropertyRepository{
		db:       dbtx,
		fallback: fallback,
	}
}

func (r *PropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	rows, _ := r.db.Query(ctx, findPropertyByID, id)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.PropertyRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property by ID", err)
	}

	return property.NewProperty(row.ID, row.OwnerID, row.TimeZone, r.fallback), nil
}

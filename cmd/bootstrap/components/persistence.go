package components

import (
	"log/slog"
	"strings"
	"time"

	"visit-scheduler/internal/infra/memstore"
	"visit-scheduler/internal/infra/uow"
	"visit-scheduler/internal/pkg/config"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDefaultLocation,
		NewUnitOfWork,
	),
)

// NewDefaultLocation is the zone used for properties without a valid IANA name.
func NewDefaultLocation(cfg config.Config) (*time.Location, error) {
	loc, err := time.LoadLocation(cfg.Scheduling.DefaultTimeZone)
	if err != nil {
		return nil, errs.Wrapf(err, "invalid SCHEDULING_DEFAULT_TIMEZONE %q", cfg.Scheduling.DefaultTimeZone)
	}
	return loc, nil
}

func NewUnitOfWork(cfg config.Config, pool *pgxpool.Pool, fallback *time.Location, logger *slog.Logger) (shared.UnitOfWork, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memstore.New(fallback)
		if err := seedProperties(store, cfg.Storage.SeedProperties); err != nil {
			return nil, err
		}
		logger.Warn("using in-memory storage; data is lost on restart",
			"seeded_properties", len(cfg.Storage.SeedProperties))
		return store, nil
	default:
		return uow.NewPostgresUoW(pool, fallback), nil
	}
}

func seedProperties(store *memstore.Store, entries []string) error {
	for _, entry := range entries {
		parts := strings.Split(entry, "|")
		if len(parts) != 3 {
			return errs.Newf("seed property %q: want propertyID|ownerID|TimeZone", entry)
		}
		propertyID, err := uuid.Parse(parts[0])
		if err != nil {
			return errs.Wrapf(err, "seed property %q", entry)
		}
		ownerID, err := uuid.Parse(parts[1])
		if err != nil {
			return errs.Wrapf(err, "seed property %q", entry)
		}
		store.PutProperty(propertyID, ownerID, parts[2])
	}
	return nil
}

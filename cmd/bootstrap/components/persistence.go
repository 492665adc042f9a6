package components

import (
	"context"
	"log/slog"

	"hotel-reservation/internal/infra/db"
	"hotel-reservation/internal/infra/memstore"
	"hotel-reservation/internal/infra/uow"
	"hotel-reservation/internal/pkg/config"
	"hotel-reservation/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork picks the storage backend from STORAGE_DRIVER. The pool is only opened for postgres.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.UnitOfWork, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		return memstore.NewUnitOfWork(memstore.NewStore()), nil
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})
	logger.Info("connected to postgres", "host", cfg.DB.Host, "database", cfg.DB.DBName)

	return uow.NewPostgresUoW(pool), nil
}

package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tournament-ledger/internal/config"
	"github.com/riskibarqy/tournament-ledger/internal/domain/unitofwork"
	"github.com/riskibarqy/tournament-ledger/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/tournament-ledger/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-ledger/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/tournament-ledger/internal/platform/cache"
	"github.com/riskibarqy/tournament-ledger/internal/platform/logging"
)

type storage struct {
	repos unitofwork.Repositories
	uow   unitofwork.UnitOfWork
	close func() error
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage, error) {
	var out storage

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return storage{}, err
		}

		out = storage{
			repos: postgres.NewRepositories(db),
			uow:   postgres.NewUnitOfWork(db, cfg.DBCircuit.NewBreaker()),
			close: db.Close,
		}
		logger.Info("storage ready",
			"driver", cfg.StorageDriver,
			"db_name", databaseName(cfg.DBURL),
			"circuit_breaker", cfg.DBCircuit.Enabled,
		)
	case config.StorageMemory:
		store := memory.NewStore()
		out = storage{
			repos: store.Repositories(),
			uow:   store,
			close: func() error { return nil },
		}
		if cfg.SeedDemoData {
			if err := memory.SeedDemo(ctx, store); err != nil {
				return storage{}, fmt.Errorf("seed demo data: %w", err)
			}
			logger.Info("demo data seeded")
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver)
	default:
		return storage{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		out.repos.Tournaments = cache.NewTournamentRepository(out.repos.Tournaments, store)
		out.uow = cache.NewUnitOfWork(out.uow, store)
	}

	return out, nil
}

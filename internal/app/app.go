// Package app assembles the spot repository, image stager and service from configuration.
// Both the HTTP server and the CLI start from here.
package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"spotapi/internal/config"
	"spotapi/internal/database"
	"spotapi/internal/database/migration"
	"spotapi/internal/logging"
	"spotapi/internal/repository"
	"spotapi/internal/repository/firestore"
	"spotapi/internal/repository/memory"
	"spotapi/internal/repository/mongodb"
	"spotapi/internal/repository/postgres"
	"spotapi/internal/service"
	"spotapi/internal/storage"
)

// App holds the wired components and the cleanups that release them.
type App struct {
	Repo    repository.SpotRepository
	Stager  *storage.Stager
	Service service.SpotService

	closers []func() error
}

// Close releases backend connections in reverse order of creation.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// New connects the configured backends. reg may be nil to skip service metrics.
func New(ctx context.Context, cfg *config.AppConfig, log *logging.Logger, reg prometheus.Registerer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a := &App{}

	repo, err := a.openRepository(ctx, cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Repo = repo

	store, err := openStorage(cfg.Storage)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize image storage: %w", err)
	}
	a.Stager = storage.NewStager(store)

	var metrics *service.Metrics
	if reg != nil {
		if metrics, err = service.NewMetrics(reg); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to register service metrics: %w", err)
		}
	}

	a.Service = service.NewSpotService(a.Stager, a.Repo, log, metrics)
	return a, nil
}

func (a *App) openRepository(ctx context.Context, cfg *config.AppConfig, log *logging.Logger) (repository.SpotRepository, error) {
	switch cfg.Backend {
	case config.BackendFirestore:
		client, err := database.NewFirestore(ctx, cfg.Firestore)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to firestore: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return firestore.NewSpotFirestore(client, cfg.Collection), nil

	case config.BackendMongo:
		client, err := database.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		a.closers = append(a.closers, func() error { return client.Disconnect(context.Background()) })
		return mongodb.NewSpotMongo(client.Database(cfg.Mongo.Database), cfg.Collection), nil

	case config.BackendPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		if err := migration.EnsureMigrated(ctx, db, cfg.Collection, log, cfg.Database.Host); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return postgres.NewSpotPostgres(db, cfg.Collection), nil

	case config.BackendMemory:
		return memory.NewSpotMemory(), nil
	}
	return nil, fmt.Errorf("unknown document backend %q", cfg.Backend)
}

func openStorage(cfg config.StorageConfig) (storage.Storage, error) {
	if cfg.Backend == config.StorageMinIO {
		return storage.NewMinIO(cfg.MinIO)
	}
	return storage.NewLocal(cfg.Dir)
}

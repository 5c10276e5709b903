// Package storage selects the repository backend configured by STORAGE_DRIVER.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/coursemart/internal/config"
	"github.com/polkiloo/coursemart/internal/domain/repository"
	"github.com/polkiloo/coursemart/internal/storage/memory"
	"github.com/polkiloo/coursemart/internal/storage/postgres"
	"github.com/polkiloo/coursemart/internal/storage/sqlite"
)

// Module wires the configured storage and its repository adapters.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.UserRepository { return f.Users() },
		func(f repository.Factory) repository.CourseRepository { return f.Courses() },
		func(f repository.Factory) repository.CartRepository { return f.Carts() },
		func(f repository.Factory) repository.OrderRepository { return f.Orders() },
		func(f repository.Factory) repository.EnrollmentRepository { return f.Enrollments() },
	),
	fx.Invoke(registerLifecycle),
)

type factoryParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newFactory(p factoryParams) (repository.Factory, error) {
	switch p.Config.StorageDriver {
	case config.StorageMemory, "":
		return memory.New(), nil
	case config.StoragePostgres:
		storage, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
		if err != nil {
			return nil, err
		}
		return storage, nil
	case config.StorageSQLite:
		storage, err := sqlite.New(p.Config.SQLitePath, p.Logger)
		if err != nil {
			return nil, err
		}
		return storage, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", p.Config.StorageDriver)
	}
}

func registerLifecycle(lc fx.Lifecycle, factory repository.Factory, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := factory.HealthCheck(ctx); err != nil {
				return fmt.Errorf("storage health check: %w", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			factory.Close()
			logger.Info("storage closed")
			return nil
		},
	})
}

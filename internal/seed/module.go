package seed

import (
	"context"

	"go.uber.org/fx"

	"github.com/polkiloo/coursemart/internal/config"
)

// Module seeds demo data on start when SEED_DEMO_DATA is enabled.
var Module = fx.Options(
	fx.Provide(NewSeeder),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, cfg *config.Config, seeder *Seeder) {
	if !cfg.SeedDemoData {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return seeder.Run(ctx)
		},
	})
}

package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/coursemart/internal/adapter/payment"
	"github.com/polkiloo/coursemart/internal/app"
	"github.com/polkiloo/coursemart/internal/config"
	"github.com/polkiloo/coursemart/internal/logger"
	"github.com/polkiloo/coursemart/internal/pkg/auth"
	"github.com/polkiloo/coursemart/internal/seed"
	"github.com/polkiloo/coursemart/internal/server/http/router"
	"github.com/polkiloo/coursemart/internal/storage"
	"github.com/polkiloo/coursemart/internal/usecase"
)

// Module assembles the application graph. Hooks start in the listed order,
// so storage is checked before seeding and seeding runs before serving.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		payment.Module,
		usecase.Module,
		seed.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/coursemart/internal/config"
	"github.com/polkiloo/coursemart/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCatalogUseCase,
	NewCartUseCase,
	NewEnrollmentUseCase,
	newOrderUseCase,
)

type orderParams struct {
	fx.In

	Config      *config.Config
	Orders      repository.OrderRepository
	Carts       *CartUseCase
	Enrollments *EnrollmentUseCase
	Gateway     PaymentGateway
	Logger      *slog.Logger
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Carts, p.Enrollments, p.Gateway, p.Logger, p.Config.Payment.Timeout)
}

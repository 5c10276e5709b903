package payment

import (
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/coursemart/internal/config"
	"github.com/polkiloo/coursemart/internal/usecase"
)

// Module exposes the configured payment gateway to fx graph.
var Module = fx.Provide(newGateway)

type gatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p gatewayParams) (usecase.PaymentGateway, error) {
	cfg := p.Config.Payment
	switch cfg.Gateway {
	case config.GatewayMock, "":
		return NewMockGateway(cfg.SuccessRate, cfg.MockLatency), nil
	case config.GatewayHTTP:
		gateway, err := NewHTTPGateway(cfg.GatewayURL, p.Logger)
		if err != nil {
			return nil, err
		}
		return gateway, nil
	case config.GatewayBraintree:
		return NewBraintreeGateway(BraintreeCredentials{
			Environment: cfg.Braintree.Environment,
			MerchantID:  cfg.Braintree.MerchantID,
			PublicKey:   cfg.Braintree.PublicKey,
			PrivateKey:  cfg.Braintree.PrivateKey,
		}, p.Logger), nil
	default:
		return nil, fmt.Errorf("unknown payment gateway %q", cfg.Gateway)
	}
}

package test

import (
	"context"
	"sync"

	"github.com/polkiloo/coursemart/internal/domain/model"
)

// PaymentGatewayStub records charges and answers with ChargeFn or approval.
type PaymentGatewayStub struct {
	mu       sync.Mutex
	ChargeFn func(context.Context, model.Charge) (model.ChargeResult, error)
	Charges  []model.Charge
}

// Charge records the request and delegates to ChargeFn.
func (s *PaymentGatewayStub) Charge(ctx context.Context, charge model.Charge) (model.ChargeResult, error) {
	s.mu.Lock()
	s.Charges = append(s.Charges, charge)
	fn := s.ChargeFn
	s.mu.Unlock()

	if fn != nil {
		return fn(ctx, charge)
	}
	return model.ChargeResult{Approved: true, TransactionID: "tx-" + charge.OrderID}, nil
}

// Calls returns number of recorded charges.
func (s *PaymentGatewayStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Charges)
}

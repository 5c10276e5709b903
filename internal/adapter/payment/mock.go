package payment

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/coursemart/internal/domain/model"
)

// DeclineReason is reported for simulated and unexplained declines.
const DeclineReason = "Payment failed. Please try again."

// MockGateway simulates a card processor with fixed latency and success rate.
type MockGateway struct {
	successRate float64
	latency     time.Duration

	mu   sync.Mutex
	rand *rand.Rand
}

// NewMockGateway builds a gateway approving roughly successRate of charges.
func NewMockGateway(successRate float64, latency time.Duration) *MockGateway {
	return &MockGateway{
		successRate: successRate,
		latency:     latency,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Charge waits for latency, then approves or declines at random.
func (g *MockGateway) Charge(ctx context.Context, charge model.Charge) (model.ChargeResult, error) {
	if g.latency > 0 {
		timer := time.NewTimer(g.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return model.ChargeResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	if g.roll() >= g.successRate {
		return model.ChargeResult{Approved: false, Reason: DeclineReason}, nil
	}
	return model.ChargeResult{Approved: true, TransactionID: "mock_" + uuid.NewString()}, nil
}

func (g *MockGateway) roll() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rand.Float64()
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/coursemart/internal/domain/errors"
	"github.com/polkiloo/coursemart/internal/domain/model"
	"github.com/polkiloo/coursemart/internal/domain/repository"
)

// DefaultPaymentTimeout bounds a single gateway call when none is configured.
const DefaultPaymentTimeout = 10 * time.Second

// PaymentGateway charges cards. Declines are reported through ChargeResult, not errors.
type PaymentGateway interface {
	Charge(ctx context.Context, charge model.Charge) (model.ChargeResult, error)
}

// OrderUseCase encapsulates order lifecycle logic from creation to fulfilment.
type OrderUseCase struct {
	orders      repository.OrderRepository
	carts       *CartUseCase
	enrollments *EnrollmentUseCase
	gateway     PaymentGateway
	logger      *slog.Logger
	timeout     time.Duration
	locks       *keyedMutex
	now         func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	carts *CartUseCase,
	enrollments *EnrollmentUseCase,
	gateway PaymentGateway,
	logger *slog.Logger,
	paymentTimeout time.Duration,
) *OrderUseCase {
	if paymentTimeout <= 0 {
		paymentTimeout = DefaultPaymentTimeout
	}
	return &OrderUseCase{
		orders:      orders,
		carts:       carts,
		enrollments: enrollments,
		gateway:     gateway,
		logger:      logger,
		timeout:     paymentTimeout,
		locks:       newKeyedMutex(),
		now:         time.Now,
	}
}

// CreateOrder records a pending order holding a private copy of items.
// A non-zero total must equal the sum of item prices.
func (u *OrderUseCase) CreateOrder(ctx context.Context, userID string, items []model.CartItem, total decimal.Decimal) (*model.Order, error) {
	if len(items) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	snapshot := model.CloneItems(items)
	computed := model.SumItems(snapshot)
	if !total.IsZero() && !total.Equal(computed) {
		return nil, fmt.Errorf("%w: got %s, items sum to %s", domainErrors.ErrTotalMismatch, total, computed)
	}

	order, err := u.orders.Create(ctx, model.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Items:     snapshot,
		Total:     computed,
		Currency:  model.DefaultCurrency,
		Status:    model.OrderStatusPending,
		CreatedAt: u.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	u.logger.Info("order created",
		slog.String("order_id", order.ID),
		slog.String("user_id", userID),
		slog.String("total", order.Total.StringFixed(2)),
	)
	return order, nil
}

// CreateOrderFromCart snapshots the user's stored cart into a new order.
func (u *OrderUseCase) CreateOrderFromCart(ctx context.Context, userID string) (*model.Order, error) {
	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.CreateOrder(ctx, userID, cart.Items(), cart.Total())
}

// GetOrder returns order by identifier.
func (u *OrderUseCase) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// GetUserOrder returns order only when it belongs to userID.
func (u *OrderUseCase) GetUserOrder(ctx context.Context, userID, orderID string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (u *OrderUseCase) ListOrders(ctx context.Context, userID string) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// UpdateOrderStatus moves a pending order to paid or failed.
func (u *OrderUseCase) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	if !model.OrderStatusPending.CanTransition(status) {
		return nil, fmt.Errorf("%w: cannot move to %q", domainErrors.ErrInvalidOrderState, status)
	}

	unlock := u.locks.Lock(orderID)
	defer unlock()

	return u.orders.TransitionStatus(ctx, orderID, model.StatusChange{
		From: model.OrderStatusPending,
		To:   status,
		At:   u.now().UTC(),
	})
}

// PendingFulfilment lists paid orders whose enrollment step has not completed.
func (u *OrderUseCase) PendingFulfilment(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.ListUnfulfilled(ctx, limit)
}

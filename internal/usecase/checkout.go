package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/polkiloo/coursemart/internal/domain/errors"
	"github.com/polkiloo/coursemart/internal/domain/model"
)

// Failure reasons shown to the buyer.
const (
	ReasonPaymentFailed  = "Payment failed. Please try again."
	ReasonGatewayTimeout = "Payment gateway did not respond in time. Please try again."
)

// Checkout validates details, snapshots the cart into a new order and pays for it.
// Every call creates a fresh order, so a retry after failure never reuses one.
func (u *OrderUseCase) Checkout(ctx context.Context, userID string, details model.PaymentDetails) (*model.PaymentResult, error) {
	if err := ValidatePaymentDetails(details); err != nil {
		return nil, err
	}

	order, err := u.CreateOrderFromCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	return u.ProcessPayment(ctx, order.ID, userID, details)
}

// ProcessPayment charges a pending order exactly once and records the outcome.
// Declines and gateway failures yield a result with Success=false and a nil error.
func (u *OrderUseCase) ProcessPayment(ctx context.Context, orderID, userID string, details model.PaymentDetails) (*model.PaymentResult, error) {
	if err := ValidatePaymentDetails(details); err != nil {
		return nil, err
	}

	unlock := u.locks.Lock(orderID)
	defer unlock()

	order, err := u.GetUserOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusPending {
		return nil, fmt.Errorf("%w: order is %s", domainErrors.ErrInvalidOrderState, order.Status)
	}

	charged := u.charge(ctx, order, details)

	// The buyer may disconnect while the gateway answers; the outcome must still be stored.
	storeCtx := context.WithoutCancel(ctx)

	if !charged.Approved {
		failed, err := u.orders.TransitionStatus(storeCtx, order.ID, model.StatusChange{
			From:          model.OrderStatusPending,
			To:            model.OrderStatusFailed,
			At:            u.now().UTC(),
			FailureReason: charged.Reason,
			TransactionID: charged.TransactionID,
		})
		if err != nil {
			return nil, fmt.Errorf("mark order failed: %w", err)
		}
		u.logger.Info("payment failed",
			slog.String("order_id", order.ID),
			slog.String("reason", charged.Reason),
		)
		return &model.PaymentResult{
			Success:       false,
			Reason:        charged.Reason,
			TransactionID: charged.TransactionID,
			Order:         failed,
		}, nil
	}

	paid, err := u.orders.TransitionStatus(storeCtx, order.ID, model.StatusChange{
		From:          model.OrderStatusPending,
		To:            model.OrderStatusPaid,
		At:            u.now().UTC(),
		TransactionID: charged.TransactionID,
	})
	if err != nil {
		u.logger.Error("charged order could not be marked paid",
			slog.String("order_id", order.ID),
			slog.String("transaction_id", charged.TransactionID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("mark order paid: %w", err)
	}
	u.logger.Info("payment approved",
		slog.String("order_id", paid.ID),
		slog.String("transaction_id", charged.TransactionID),
	)

	// Fulfilment errors are logged inside; the reconciler retries them and the order stays paid.
	enrollments, fulfilErr := u.OnPaymentSuccess(storeCtx, paid)

	return &model.PaymentResult{
		Success:           true,
		TransactionID:     charged.TransactionID,
		Order:             paid,
		Enrollments:       enrollments,
		FulfilmentPending: fulfilErr != nil,
	}, nil
}

// OnPaymentSuccess enrolls the buyer, removes purchased items from the cart and
// marks the order fulfilled. Errors are logged and returned; the order stays paid.
func (u *OrderUseCase) OnPaymentSuccess(ctx context.Context, order *model.Order) ([]model.Enrollment, error) {
	if order.Status != model.OrderStatusPaid {
		return nil, fmt.Errorf("%w: order is %s", domainErrors.ErrInvalidOrderState, order.Status)
	}

	var errs []error

	enrollments, err := u.enrollments.EnrollAll(ctx, order.UserID, order.Items)
	if err != nil {
		errs = append(errs, err)
	}

	courseIDs := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		courseIDs = append(courseIDs, item.CourseID)
	}
	if err := u.carts.RemoveCourses(ctx, order.UserID, courseIDs); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		at := u.now().UTC()
		if err := u.orders.MarkFulfilled(ctx, order.ID, at); err != nil {
			errs = append(errs, fmt.Errorf("mark fulfilled: %w", err))
		} else {
			order.FulfilledAt = &at
		}
	}

	if err := errors.Join(errs...); err != nil {
		u.logger.Error("order fulfilment incomplete",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		return enrollments, fmt.Errorf("fulfil order %s: %w", order.ID, err)
	}

	u.logger.Info("order fulfilled",
		slog.String("order_id", order.ID),
		slog.Int("enrollments", len(enrollments)),
	)
	return enrollments, nil
}

type chargeOutcome struct {
	result model.ChargeResult
	err    error
}

// charge performs the single gateway call under the payment timeout.
// Only the timeout ends the call; a buyer disconnect must not orphan an approved charge.
// A gateway that ignores cancellation is abandoned once the deadline passes.
func (u *OrderUseCase) charge(ctx context.Context, order *model.Order, details model.PaymentDetails) model.ChargeResult {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.timeout)
	defer cancel()

	details.CardNumber = details.NormalizedCardNumber()
	request := model.Charge{
		OrderID:  order.ID,
		Amount:   order.Total,
		Currency: order.Currency,
		Details:  details,
	}

	done := make(chan chargeOutcome, 1)
	go func() {
		res, err := u.gateway.Charge(ctx, request)
		done <- chargeOutcome{result: res, err: err}
	}()

	var outcome chargeOutcome
	select {
	case outcome = <-done:
	case <-ctx.Done():
		outcome = chargeOutcome{err: ctx.Err()}
	}

	switch {
	case errors.Is(outcome.err, context.DeadlineExceeded):
		u.logger.Warn("payment gateway timed out", slog.String("order_id", order.ID))
		return model.ChargeResult{Reason: ReasonGatewayTimeout}
	case outcome.err != nil:
		u.logger.Error("payment gateway error",
			slog.String("order_id", order.ID),
			slog.String("error", outcome.err.Error()),
		)
		return model.ChargeResult{Reason: ReasonPaymentFailed}
	case !outcome.result.Approved && outcome.result.Reason == "":
		outcome.result.Reason = ReasonPaymentFailed
	}
	return outcome.result
}

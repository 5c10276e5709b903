package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes payment lifecycle.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

// DefaultCurrency is used for every order.
const DefaultCurrency = "USD"

// CanTransition reports whether status may move to next. Only pending orders move.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	return s == OrderStatusPending && (next == OrderStatusPaid || next == OrderStatusFailed)
}

// Order is a single checkout attempt.
type Order struct {
	ID            string
	UserID        string
	Items         []CartItem
	Total         decimal.Decimal
	Currency      string
	Status        OrderStatus
	FailureReason string
	TransactionID string
	CreatedAt     time.Time
	PaidAt        *time.Time
	FulfilledAt   *time.Time
}

// StatusChange describes a compare-and-set transition of an order.
type StatusChange struct {
	From          OrderStatus
	To            OrderStatus
	At            time.Time
	FailureReason string
	TransactionID string
}

// Clone returns a deep copy of the order.
func (o Order) Clone() Order {
	out := o
	out.Items = CloneItems(o.Items)
	if o.PaidAt != nil {
		at := *o.PaidAt
		out.PaidAt = &at
	}
	if o.FulfilledAt != nil {
		at := *o.FulfilledAt
		out.FulfilledAt = &at
	}
	return out
}

// Apply sets the target status and the fields that accompany it.
func (o *Order) Apply(change StatusChange) {
	o.Status = change.To
	if change.TransactionID != "" {
		o.TransactionID = change.TransactionID
	}
	switch change.To {
	case OrderStatusPaid:
		at := change.At
		o.PaidAt = &at
	case OrderStatusFailed:
		o.FailureReason = change.FailureReason
	}
}

package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentDetails is the card data submitted at checkout.
type PaymentDetails struct {
	CardNumber string
	ExpiryDate string
	CVV        string
	Name       string
}

// NormalizedCardNumber strips spaces and dashes used as separators.
func (d PaymentDetails) NormalizedCardNumber() string {
	return strings.NewReplacer(" ", "", "-", "").Replace(d.CardNumber)
}

// Charge is a single request to the payment gateway.
type Charge struct {
	OrderID  string
	Amount   decimal.Decimal
	Currency string
	Details  PaymentDetails
}

// ChargeResult is the gateway outcome of a charge.
type ChargeResult struct {
	Approved      bool
	TransactionID string
	Reason        string
}

// PaymentResult reports the outcome of processing a payment for an order.
type PaymentResult struct {
	Success       bool
	Reason        string
	TransactionID string
	Order         *Order
	Enrollments   []Enrollment

	// FulfilmentPending marks a paid order whose enrollment is left to the reconciler.
	FulfilmentPending bool
}

package dto

import (
	"time"

	"github.com/polkiloo/coursemart/internal/domain/model"
)

// OrderResponse describes an order and its payment state.
type OrderResponse struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	Items         []model.CartItem `json:"items"`
	Total         string           `json:"total"`
	Currency      string           `json:"currency"`
	Status        string           `json:"status"`
	FailureReason string           `json:"failureReason,omitempty"`
	TransactionID string           `json:"transactionId,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	PaidAt        *time.Time       `json:"paidAt,omitempty"`
	FulfilledAt   *time.Time       `json:"fulfilledAt,omitempty"`
}

// PaymentRequest carries card details for a charge.
type PaymentRequest struct {
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
	Name       string `json:"name"`
}

// PaymentResponse reports the outcome of a payment attempt.
type PaymentResponse struct {
	Success       bool                 `json:"success"`
	TransactionID string               `json:"transactionId,omitempty"`
	Reason        string               `json:"reason,omitempty"`
	Order         *OrderResponse       `json:"order,omitempty"`
	Enrollments   []EnrollmentResponse `json:"enrollments,omitempty"`

	FulfilmentPending bool `json:"fulfilmentPending,omitempty"`
}

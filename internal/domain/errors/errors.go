package errors

import "errors"

var (
	ErrAlreadyExists          = errors.New("already exists")
	ErrNotFound               = errors.New("not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrTotalMismatch          = errors.New("order total does not match items")
	ErrInvalidPaymentDetails  = errors.New("invalid payment details")
	ErrGatewayFailure         = errors.New("payment gateway failure")
	ErrInvalidOrderState      = errors.New("invalid order state")
	ErrAlreadyEnrolled        = errors.New("already enrolled")
	ErrUnsupportedCartVersion = errors.New("unsupported cart snapshot version")
)

package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	domainErrors "github.com/polkiloo/coursemart/internal/domain/errors"
	"github.com/polkiloo/coursemart/internal/domain/model"
)

// ValidateCardNumber checks that a separator-free card number is non-empty and digits-only.
// Issuer rules such as length and checksum are left to the gateway.
func ValidateCardNumber(number string) bool {
	return digitsOnly(number)
}

// ValidatePaymentDetails performs structural checks only; the gateway decides acceptance.
func ValidatePaymentDetails(details model.PaymentDetails) error {
	if !ValidateCardNumber(details.NormalizedCardNumber()) {
		return fmt.Errorf("%w: card number", domainErrors.ErrInvalidPaymentDetails)
	}
	if !validExpiry(strings.TrimSpace(details.ExpiryDate)) {
		return fmt.Errorf("%w: expiry date", domainErrors.ErrInvalidPaymentDetails)
	}
	if cvv := strings.TrimSpace(details.CVV); len(cvv) < 3 || len(cvv) > 4 || !digitsOnly(cvv) {
		return fmt.Errorf("%w: cvv", domainErrors.ErrInvalidPaymentDetails)
	}
	if strings.TrimSpace(details.Name) == "" {
		return fmt.Errorf("%w: cardholder name", domainErrors.ErrInvalidPaymentDetails)
	}
	return nil
}

// validExpiry accepts MM/YY with month 01-12.
func validExpiry(value string) bool {
	month, year, ok := strings.Cut(value, "/")
	if !ok || len(month) != 2 || len(year) != 2 || !digitsOnly(month) || !digitsOnly(year) {
		return false
	}
	m := int(month[0]-'0')*10 + int(month[1]-'0')
	return m >= 1 && m <= 12
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("%w: email", domainErrors.ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: email", domainErrors.ErrInvalidInput)
	}
	return email, nil
}

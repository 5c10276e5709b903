package test

import (
	"io"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/coursemart/internal/domain/model"
)

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// Course builds a published course priced from a decimal string.
func Course(id, price string) model.Course {
	return model.Course{
		ID:        id,
		Title:     "Course " + id,
		Price:     decimal.RequireFromString(price),
		Category:  "Development",
		Level:     model.LevelBeginner,
		Published: true,
		Lessons:   []model.Lesson{{ID: id + "-1", Title: "Welcome", Order: 1}},
	}
}

// ValidPaymentDetails returns card details that pass structural validation.
func ValidPaymentDetails() model.PaymentDetails {
	return model.PaymentDetails{
		CardNumber: "4111 1111 1111 1111",
		ExpiryDate: "12/30",
		CVV:        "123",
		Name:       "John Student",
	}
}

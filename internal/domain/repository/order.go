package repository

import (
	"context"
	"time"

	"github.com/polkiloo/coursemart/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	// TransitionStatus applies change only while the stored status equals change.From.
	// It returns ErrInvalidOrderState when the stored status differs.
	TransitionStatus(ctx context.Context, id string, change model.StatusChange) (*model.Order, error)
	ListUnfulfilled(ctx context.Context, limit int) ([]model.Order, error)
	MarkFulfilled(ctx context.Context, id string, at time.Time) error
}

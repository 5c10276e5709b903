package memory

import (
	"context"
	"sort"
	"time"

	domainErrors "github.com/polkiloo/coursemart/internal/domain/errors"
	"github.com/polkiloo/coursemart/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

func (r *orderRepository) Create(_ context.Context, order model.Order) (*model.Order, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	s.orders[order.ID] = order.Clone()
	out := order.Clone()
	return &out, nil
}

func (r *orderRepository) GetByID(_ context.Context, id string) (*model.Order, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := order.Clone()
	return &out, nil
}

func (r *orderRepository) ListByUser(_ context.Context, userID string) ([]model.Order, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			out = append(out, order.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *orderRepository) TransitionStatus(_ context.Context, id string, change model.StatusChange) (*model.Order, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if order.Status != change.From {
		return nil, domainErrors.ErrInvalidOrderState
	}

	order.Apply(change)
	s.orders[id] = order
	out := order.Clone()
	return &out, nil
}

func (r *orderRepository) ListUnfulfilled(_ context.Context, limit int) ([]model.Order, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Order
	for _, order := range s.orders {
		if order.Status == model.OrderStatusPaid && order.FulfilledAt == nil {
			out = append(out, order.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PaidAt.Before(*out[j].PaidAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *orderRepository) MarkFulfilled(_ context.Context, id string, at time.Time) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if order.FulfilledAt == nil {
		order.FulfilledAt = &at
		s.orders[id] = order
	}
	return nil
}

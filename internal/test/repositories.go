package test

import (
	"context"
	"time"

	"github.com/polkiloo/coursemart/internal/domain/model"
	"github.com/polkiloo/coursemart/internal/domain/repository"
)

// UserRepositoryStub forwards to Base unless Err is set.
type UserRepositoryStub struct {
	repository.UserRepository
	Err error
}

// Create fails with Err when configured.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.UserRepository.Create(ctx, user)
}

// GetByEmail fails with Err when configured.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.UserRepository.GetByEmail(ctx, email)
}

// OrderRepositoryStub wraps a real repository with optional overrides.
type OrderRepositoryStub struct {
	repository.OrderRepository

	CreateFn           func(context.Context, model.Order) (*model.Order, error)
	TransitionStatusFn func(context.Context, string, model.StatusChange) (*model.Order, error)
	ListUnfulfilledFn  func(context.Context, int) ([]model.Order, error)
	MarkFulfilledFn    func(context.Context, string, time.Time) error
}

// Create delegates to CreateFn when set.
func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	return s.OrderRepository.Create(ctx, order)
}

// TransitionStatus delegates to TransitionStatusFn when set.
func (s *OrderRepositoryStub) TransitionStatus(ctx context.Context, id string, change model.StatusChange) (*model.Order, error) {
	if s.TransitionStatusFn != nil {
		return s.TransitionStatusFn(ctx, id, change)
	}
	return s.OrderRepository.TransitionStatus(ctx, id, change)
}

// ListUnfulfilled delegates to ListUnfulfilledFn when set.
func (s *OrderRepositoryStub) ListUnfulfilled(ctx context.Context, limit int) ([]model.Order, error) {
	if s.ListUnfulfilledFn != nil {
		return s.ListUnfulfilledFn(ctx, limit)
	}
	return s.OrderRepository.ListUnfulfilled(ctx, limit)
}

// MarkFulfilled delegates to MarkFulfilledFn when set.
func (s *OrderRepositoryStub) MarkFulfilled(ctx context.Context, id string, at time.Time) error {
	if s.MarkFulfilledFn != nil {
		return s.MarkFulfilledFn(ctx, id, at)
	}
	return s.OrderRepository.MarkFulfilled(ctx, id, at)
}

// EnrollmentRepositoryStub wraps a real repository with an optional Create override.
type EnrollmentRepositoryStub struct {
	repository.EnrollmentRepository

	CreateFn func(context.Context, model.Enrollment) (*model.Enrollment, bool, error)
}

// Create delegates to CreateFn when set.
func (s *EnrollmentRepositoryStub) Create(ctx context.Context, enrollment model.Enrollment) (*model.Enrollment, bool, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, enrollment)
	}
	return s.EnrollmentRepository.Create(ctx, enrollment)
}

// CartRepositoryStub wraps a real repository with optional failures.
type CartRepositoryStub struct {
	repository.CartRepository

	LoadErr error
	SaveErr error
}

// Load fails with LoadErr when configured.
func (s *CartRepositoryStub) Load(ctx context.Context, userID string) (model.CartSnapshot, error) {
	if s.LoadErr != nil {
		return model.CartSnapshot{}, s.LoadErr
	}
	return s.CartRepository.Load(ctx, userID)
}

// Save fails with SaveErr when configured.
func (s *CartRepositoryStub) Save(ctx context.Context, userID string, snapshot model.CartSnapshot) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	return s.CartRepository.Save(ctx, userID, snapshot)
}

package memory

import (
	"context"

	domainErrors "github.com/polkiloo/coursemart/internal/domain/errors"
	"github.com/polkiloo/coursemart/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

func (r *userRepository) Create(_ context.Context, user model.User) (*model.User, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.emails[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if _, exists := s.users[user.ID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}

	s.users[user.ID] = user
	s.emails[user.Email] = user.ID
	return &user, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	user := s.users[id]
	return &user, nil
}

func (r *userRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &user, nil
}

package memory

import (
	"context"

	"github.com/polkiloo/coursemart/internal/domain/model"
)

type cartRepository struct {
	storage *Storage
}

func (r *cartRepository) Load(_ context.Context, userID string) (model.CartSnapshot, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.carts[userID]
	if !ok {
		return model.CartSnapshot{Version: model.CartSchemaVersion}, nil
	}
	snapshot.Items = model.CloneItems(snapshot.Items)
	return snapshot, nil
}

func (r *cartRepository) Save(_ context.Context, userID string, snapshot model.CartSnapshot) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot.Items = model.CloneItems(snapshot.Items)
	s.carts[userID] = snapshot
	return nil
}

func (r *cartRepository) Delete(_ context.Context, userID string) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}

package repository

import (
	"context"

	"github.com/polkiloo/coursemart/internal/domain/model"
)

// CartRepository stores one cart snapshot per user.
// Load returns an empty current-version snapshot when nothing is stored.
type CartRepository interface {
	Load(ctx context.Context, userID string) (model.CartSnapshot, error)
	Save(ctx context.Context, userID string, snapshot model.CartSnapshot) error
	Delete(ctx context.Context, userID string) error
}

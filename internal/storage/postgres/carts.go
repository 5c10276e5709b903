package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/coursemart/internal/domain/model"
)

type cartRepository struct {
	storage *Storage
}

func (r *cartRepository) Load(ctx context.Context, userID string) (model.CartSnapshot, error) {
	const query = `SELECT snapshot FROM carts WHERE user_id=$1`
	var raw []byte
	if err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CartSnapshot{Version: model.CartSchemaVersion}, nil
		}
		return model.CartSnapshot{}, err
	}
	var snapshot model.CartSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return model.CartSnapshot{}, fmt.Errorf("decode cart: %w", err)
	}
	return snapshot, nil
}

func (r *cartRepository) Save(ctx context.Context, userID string, snapshot model.CartSnapshot) error {
	const query = `INSERT INTO carts (user_id, snapshot, updated_at) VALUES ($1, $2, $3)
                   ON CONFLICT (user_id) DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = EXCLUDED.updated_at`
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	_, err = r.storage.pool.Exec(ctx, query, userID, raw, snapshot.UpdatedAt)
	return err
}

func (r *cartRepository) Delete(ctx context.Context, userID string) error {
	const query = `DELETE FROM carts WHERE user_id=$1`
	_, err := r.storage.pool.Exec(ctx, query, userID)
	return err
}

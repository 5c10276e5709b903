package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/coursemart/internal/domain/errors"
	"github.com/polkiloo/coursemart/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `id, user_id, items, total_cents, currency, status, failure_reason, transaction_id, created_at, paid_at, fulfilled_at`

func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (id, user_id, items, total_cents, currency, status, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)`
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	_, err = r.storage.pool.Exec(ctx, query,
		order.ID, order.UserID, items, toCents(order.Total), order.Currency, string(order.Status), order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	out := order.Clone()
	return &out, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, userID)
}

func (r *orderRepository) ListUnfulfilled(ctx context.Context, limit int) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
                   WHERE status = 'paid' AND fulfilled_at IS NULL
                   ORDER BY paid_at
                   LIMIT $1`
	if limit <= 0 {
		limit = math.MaxInt32
	}
	return r.list(ctx, query, limit)
}

// TransitionStatus locks the row so the status check and the update see the same version.
func (r *orderRepository) TransitionStatus(ctx context.Context, id string, change model.StatusChange) (*model.Order, error) {
	const selectQuery = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
	const updateQuery = `UPDATE orders SET status=$1, failure_reason=$2, transaction_id=$3, paid_at=$4 WHERE id=$5`

	var updated model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := scanOrder(tx.QueryRow(ctx, selectQuery, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if order.Status != change.From {
			return domainErrors.ErrInvalidOrderState
		}

		order.Apply(change)
		if _, err := tx.Exec(ctx, updateQuery,
			string(order.Status), order.FailureReason, order.TransactionID, order.PaidAt, id,
		); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *orderRepository) MarkFulfilled(ctx context.Context, id string, at time.Time) error {
	const query = `UPDATE orders SET fulfilled_at = COALESCE(fulfilled_at, $2) WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) list(ctx context.Context, query string, arg any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanOrder(row pgx.Row) (model.Order, error) {
	var (
		o      model.Order
		items  []byte
		cents  int64
		status string
	)
	err := row.Scan(&o.ID, &o.UserID, &items, &cents, &o.Currency, &status,
		&o.FailureReason, &o.TransactionID, &o.CreatedAt, &o.PaidAt, &o.FulfilledAt)
	if err != nil {
		return model.Order{}, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return model.Order{}, fmt.Errorf("decode items: %w", err)
	}
	o.Total = fromCents(cents)
	o.Status = model.OrderStatus(status)
	return o, nil
}

package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/coursemart/internal/domain/errors"
)

// CartSchemaVersion is the current version of the serialized cart layout.
const CartSchemaVersion = 1

// CartItem is a course selected for purchase.
type CartItem struct {
	CourseID string    `json:"courseId"`
	Course   Course    `json:"course"`
	AddedAt  time.Time `json:"addedAt"`
}

// Cart is an ordered set of items keyed by course ID.
type Cart struct {
	items []CartItem
	total decimal.Decimal
}

// NewCart builds a cart from items, dropping duplicate course IDs.
func NewCart(items ...CartItem) *Cart {
	c := &Cart{}
	for _, item := range items {
		c.Add(item)
	}
	c.recalculate()
	return c
}

// Add inserts item unless its course is already present.
func (c *Cart) Add(item CartItem) bool {
	if c.Contains(item.CourseID) {
		return false
	}
	item.Course = item.Course.Clone()
	c.items = append(c.items, item)
	c.recalculate()
	return true
}

// Remove drops the item for courseID, reporting whether anything changed.
func (c *Cart) Remove(courseID string) bool {
	for i, item := range c.items {
		if item.CourseID == courseID {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			c.recalculate()
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
	c.recalculate()
}

// Contains reports whether courseID is in the cart.
func (c *Cart) Contains(courseID string) bool {
	for _, item := range c.items {
		if item.CourseID == courseID {
			return true
		}
	}
	return false
}

// Items returns a deep copy of the cart items.
func (c *Cart) Items() []CartItem {
	return CloneItems(c.items)
}

// Len returns number of items.
func (c *Cart) Len() int {
	return len(c.items)
}

// Total returns the cached sum of item prices.
func (c *Cart) Total() decimal.Decimal {
	return c.total
}

func (c *Cart) recalculate() {
	c.total = SumItems(c.items)
}

// Snapshot serializes the cart using the current schema version.
func (c *Cart) Snapshot(now time.Time) CartSnapshot {
	return CartSnapshot{
		Version:   CartSchemaVersion,
		Items:     c.Items(),
		Total:     c.total,
		UpdatedAt: now,
	}
}

// CartSnapshot is the persisted form of a cart.
type CartSnapshot struct {
	Version   int             `json:"version"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CartFromSnapshot restores a cart. The stored total is ignored and recomputed.
func CartFromSnapshot(s CartSnapshot) (*Cart, error) {
	if s.Version != CartSchemaVersion {
		return nil, fmt.Errorf("%w: %d", domainErrors.ErrUnsupportedCartVersion, s.Version)
	}
	return NewCart(s.Items...), nil
}

// SumItems adds up course prices of items.
func SumItems(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Course.Price)
	}
	return total
}

// CloneItems deep-copies items so later mutation of the source has no effect.
func CloneItems(items []CartItem) []CartItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]CartItem, len(items))
	for i, item := range items {
		out[i] = item
		out[i].Course = item.Course.Clone()
	}
	return out
}

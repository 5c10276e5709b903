package dto

import "github.com/polkiloo/coursemart/internal/domain/model"

// AddToCartRequest names the course to add.
type AddToCartRequest struct {
	CourseID string `json:"courseId" binding:"required"`
}

// CartResponse is the current cart contents.
type CartResponse struct {
	Items     []model.CartItem `json:"items"`
	Total     string           `json:"total"`
	ItemCount int              `json:"itemCount"`
}

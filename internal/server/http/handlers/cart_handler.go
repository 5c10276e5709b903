package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/coursemart/internal/server/http/dto"
)

// CartHandler manages cart endpoints.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.facade.Cart(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, toCartResponse(cart))
}

// Add handles POST /api/cart/items.
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "courseId is required")
		return
	}
	cart, err := h.facade.AddToCart(c.Request.Context(), CurrentUserID(c), req.CourseID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, toCartResponse(cart))
}

// Remove handles DELETE /api/cart/items/:courseId.
func (h *CartHandler) Remove(c *gin.Context) {
	cart, err := h.facade.RemoveFromCart(c.Request.Context(), CurrentUserID(c), c.Param("courseId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, toCartResponse(cart))
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.facade.ClearCart(c.Request.Context(), CurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{Success: true})
}

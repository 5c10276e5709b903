package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/coursemart/internal/domain/model"
	"github.com/polkiloo/coursemart/internal/server/http/dto"
)

// OrderHandler manages order, payment and checkout endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	respond(c, http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, toOrderResponse(*order))
}

// Pay handles POST /api/orders/:id/pay.
func (h *OrderHandler) Pay(c *gin.Context) {
	details, ok := bindPayment(c)
	if !ok {
		return
	}
	result, err := h.facade.PayOrder(c.Request.Context(), CurrentUserID(c), c.Param("id"), details)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPayment(c, result)
}

// Checkout handles POST /api/checkout.
func (h *OrderHandler) Checkout(c *gin.Context) {
	details, ok := bindPayment(c)
	if !ok {
		return
	}
	result, err := h.facade.Checkout(c.Request.Context(), CurrentUserID(c), details)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPayment(c, result)
}

func bindPayment(c *gin.Context) (model.PaymentDetails, bool) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed payment details")
		return model.PaymentDetails{}, false
	}
	return model.PaymentDetails{
		CardNumber: req.CardNumber,
		ExpiryDate: req.ExpiryDate,
		CVV:        req.CVV,
		Name:       req.Name,
	}, true
}

// respondPayment answers 200 for approved charges and 402 for declines.
func respondPayment(c *gin.Context, result *model.PaymentResult) {
	payload := toPaymentResponse(result)
	if !result.Success {
		c.JSON(http.StatusPaymentRequired, dto.Response{Success: false, Data: payload, Error: result.Reason})
		return
	}
	respond(c, http.StatusOK, payload)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/coursemart/internal/domain/errors"
	"github.com/polkiloo/coursemart/internal/domain/model"
	"github.com/polkiloo/coursemart/internal/server/http/dto"
	"github.com/polkiloo/coursemart/internal/server/http/middleware"
)

// CurrentUser extracts authenticated user from context.
func CurrentUser(c *gin.Context) *model.User {
	val, ok := c.Get(middleware.UserContextKey)
	if !ok {
		return nil
	}
	user, _ := val.(*model.User)
	return user
}

// CurrentUserID returns the authenticated user's identifier or "".
func CurrentUserID(c *gin.Context) string {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return ""
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, dto.Success(data))
}

// respondError maps domain errors onto status codes. Unknown errors become 500
// without leaking details to the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "internal server error"
	}
	c.JSON(status, dto.Failure(message))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidInput),
		errors.Is(err, domainErrors.ErrEmptyCart),
		errors.Is(err, domainErrors.ErrTotalMismatch):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrAlreadyExists),
		errors.Is(err, domainErrors.ErrAlreadyEnrolled),
		errors.Is(err, domainErrors.ErrInvalidOrderState):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInvalidPaymentDetails):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.Failure(message))
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

func toCartResponse(cart *model.Cart) dto.CartResponse {
	items := cart.Items()
	if items == nil {
		items = []model.CartItem{}
	}
	return dto.CartResponse{
		Items:     items,
		Total:     cart.Total().StringFixed(2),
		ItemCount: cart.Len(),
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := order.Items
	if items == nil {
		items = []model.CartItem{}
	}
	return dto.OrderResponse{
		ID:            order.ID,
		UserID:        order.UserID,
		Items:         items,
		Total:         order.Total.StringFixed(2),
		Currency:      order.Currency,
		Status:        string(order.Status),
		FailureReason: order.FailureReason,
		TransactionID: order.TransactionID,
		CreatedAt:     order.CreatedAt,
		PaidAt:        order.PaidAt,
		FulfilledAt:   order.FulfilledAt,
	}
}

func toEnrollmentResponse(e model.Enrollment) dto.EnrollmentResponse {
	return dto.EnrollmentResponse{
		ID:                  e.ID,
		UserID:              e.UserID,
		CourseID:            e.CourseID,
		Course:              e.Course,
		Progress:            e.Progress,
		EnrolledAt:          e.EnrolledAt,
		LastWatchedLessonID: e.LastWatchedLessonID,
	}
}

func toPaymentResponse(result *model.PaymentResult) dto.PaymentResponse {
	resp := dto.PaymentResponse{
		Success:           result.Success,
		TransactionID:     result.TransactionID,
		Reason:            result.Reason,
		FulfilmentPending: result.FulfilmentPending,
	}
	if result.Order != nil {
		order := toOrderResponse(*result.Order)
		resp.Order = &order
	}
	for _, e := range result.Enrollments {
		resp.Enrollments = append(resp.Enrollments, toEnrollmentResponse(e))
	}
	return resp
}

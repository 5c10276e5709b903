package handlers

import (
	"context"

	"github.com/polkiloo/coursemart/internal/domain/model"
	"github.com/polkiloo/coursemart/internal/server/http/middleware"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	CurrentUser(ctx context.Context, userID string) (*model.User, error)
}

// CatalogFacade exposes read access to published courses.
type CatalogFacade interface {
	Courses(ctx context.Context, filter model.CourseFilter) ([]model.Course, error)
	Course(ctx context.Context, id string) (*model.Course, error)
}

// CartFacade manages the per-user cart.
type CartFacade interface {
	Cart(ctx context.Context, userID string) (*model.Cart, error)
	AddToCart(ctx context.Context, userID, courseID string) (*model.Cart, error)
	RemoveFromCart(ctx context.Context, userID, courseID string) (*model.Cart, error)
	ClearCart(ctx context.Context, userID string) error
}

// OrderFacade encapsulates order and payment operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, userID string) (*model.Order, error)
	Orders(ctx context.Context, userID string) ([]model.Order, error)
	Order(ctx context.Context, userID, orderID string) (*model.Order, error)
	PayOrder(ctx context.Context, userID, orderID string, details model.PaymentDetails) (*model.PaymentResult, error)
	Checkout(ctx context.Context, userID string, details model.PaymentDetails) (*model.PaymentResult, error)
}

// EnrollmentFacade lists purchased courses.
type EnrollmentFacade interface {
	Enrollments(ctx context.Context, userID string) ([]model.Enrollment, error)
	IsEnrolled(ctx context.Context, userID, courseID string) (bool, error)
}

// HealthFacade reports backend availability.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	CatalogFacade
	CartFacade
	OrderFacade
	EnrollmentFacade
	HealthFacade
	middleware.SessionVerifier
}

package app

import (
	"context"

	"github.com/polkiloo/coursemart/internal/domain/model"
	"github.com/polkiloo/coursemart/internal/domain/repository"
	"github.com/polkiloo/coursemart/internal/usecase"
)

// HealthChecker reports whether the storage backend is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StorefrontFacade exposes the use cases behind a single surface for transport and workers.
type StorefrontFacade struct {
	auth        *usecase.AuthUseCase
	catalog     *usecase.CatalogUseCase
	carts       *usecase.CartUseCase
	orders      *usecase.OrderUseCase
	enrollments *usecase.EnrollmentUseCase
	health      HealthChecker
}

// NewStorefrontFacade wires use cases into the facade.
func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	carts *usecase.CartUseCase,
	orders *usecase.OrderUseCase,
	enrollments *usecase.EnrollmentUseCase,
	health HealthChecker,
) *StorefrontFacade {
	return &StorefrontFacade{
		auth:        auth,
		catalog:     catalog,
		carts:       carts,
		orders:      orders,
		enrollments: enrollments,
		health:      health,
	}
}

func newHealthChecker(factory repository.Factory) HealthChecker {
	return factory
}

func (f *StorefrontFacade) Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, string, error) {
	return f.auth.Register(ctx, usecase.RegisterInput{Name: name, Email: email, Password: password, Role: role})
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StorefrontFacade) VerifySession(token string) (*model.User, error) {
	return f.auth.VerifySession(token)
}

func (f *StorefrontFacade) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

func (f *StorefrontFacade) Courses(ctx context.Context, filter model.CourseFilter) ([]model.Course, error) {
	return f.catalog.List(ctx, filter)
}

func (f *StorefrontFacade) Course(ctx context.Context, id string) (*model.Course, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StorefrontFacade) Cart(ctx context.Context, userID string) (*model.Cart, error) {
	return f.carts.Get(ctx, userID)
}

func (f *StorefrontFacade) AddToCart(ctx context.Context, userID, courseID string) (*model.Cart, error) {
	return f.carts.AddCourse(ctx, userID, courseID)
}

func (f *StorefrontFacade) RemoveFromCart(ctx context.Context, userID, courseID string) (*model.Cart, error) {
	return f.carts.RemoveCourse(ctx, userID, courseID)
}

func (f *StorefrontFacade) ClearCart(ctx context.Context, userID string) error {
	return f.carts.Clear(ctx, userID)
}

func (f *StorefrontFacade) CreateOrder(ctx context.Context, userID string) (*model.Order, error) {
	return f.orders.CreateOrderFromCart(ctx, userID)
}

func (f *StorefrontFacade) Orders(ctx context.Context, userID string) ([]model.Order, error) {
	return f.orders.ListOrders(ctx, userID)
}

func (f *StorefrontFacade) Order(ctx context.Context, userID, orderID string) (*model.Order, error) {
	return f.orders.GetUserOrder(ctx, userID, orderID)
}

func (f *StorefrontFacade) PayOrder(ctx context.Context, userID, orderID string, details model.PaymentDetails) (*model.PaymentResult, error) {
	return f.orders.ProcessPayment(ctx, orderID, userID, details)
}

func (f *StorefrontFacade) Checkout(ctx context.Context, userID string, details model.PaymentDetails) (*model.PaymentResult, error) {
	return f.orders.Checkout(ctx, userID, details)
}

func (f *StorefrontFacade) Enrollments(ctx context.Context, userID string) ([]model.Enrollment, error) {
	return f.enrollments.ListForUser(ctx, userID)
}

func (f *StorefrontFacade) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	return f.enrollments.IsEnrolled(ctx, userID, courseID)
}

// PendingFulfilment lists paid orders that still need enrollment.
func (f *StorefrontFacade) PendingFulfilment(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.PendingFulfilment(ctx, limit)
}

// FulfilOrder re-runs the post-payment steps for a paid order.
func (f *StorefrontFacade) FulfilOrder(ctx context.Context, order *model.Order) ([]model.Enrollment, error) {
	return f.orders.OnPaymentSuccess(ctx, order)
}

func (f *StorefrontFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/coursemart/internal/domain/model"
)

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	RegisterFn     func(ctx context.Context, name, email, password string, role model.Role) (*model.User, string, error)
	AuthenticateFn func(ctx context.Context, email, password string) (*model.User, string, error)
	CurrentUserFn  func(ctx context.Context, userID string) (*model.User, error)
	VerifyFn       func(token string) (*model.User, error)
}

// Register delegates to RegisterFn or returns a student with a fixed token.
func (s AuthFacadeStub) Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, email, password, role)
	}
	if role == "" {
		role = model.RoleStudent
	}
	return &model.User{ID: "user-1", Name: name, Email: email, Role: role}, "token", nil
}

// Authenticate delegates to AuthenticateFn or accepts any credentials.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: "user-1", Name: "John Student", Email: email, Role: model.RoleStudent}, "token", nil
}

// CurrentUser delegates to CurrentUserFn or returns a user with the given id.
func (s AuthFacadeStub) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	if s.CurrentUserFn != nil {
		return s.CurrentUserFn(ctx, userID)
	}
	return &model.User{ID: userID, Name: "John Student", Email: "student@example.com", Role: model.RoleStudent}, nil
}

// VerifySession delegates to VerifyFn or treats any token as user-1.
func (s AuthFacadeStub) VerifySession(token string) (*model.User, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(token)
	}
	return &model.User{ID: "user-1", Email: "student@example.com", Role: model.RoleStudent}, nil
}

// CatalogFacadeStub simulates catalog reads.
type CatalogFacadeStub struct {
	CoursesFn func(ctx context.Context, filter model.CourseFilter) ([]model.Course, error)
	CourseFn  func(ctx context.Context, id string) (*model.Course, error)
}

// Courses returns configured listing or a single course.
func (s CatalogFacadeStub) Courses(ctx context.Context, filter model.CourseFilter) ([]model.Course, error) {
	if s.CoursesFn != nil {
		return s.CoursesFn(ctx, filter)
	}
	return []model.Course{Course("course-1", "49.99")}, nil
}

// Course returns configured course or one built from id.
func (s CatalogFacadeStub) Course(ctx context.Context, id string) (*model.Course, error) {
	if s.CourseFn != nil {
		return s.CourseFn(ctx, id)
	}
	course := Course(id, "49.99")
	return &course, nil
}

// CartFacadeStub simulates cart operations.
type CartFacadeStub struct {
	CartFn   func(ctx context.Context, userID string) (*model.Cart, error)
	AddFn    func(ctx context.Context, userID, courseID string) (*model.Cart, error)
	RemoveFn func(ctx context.Context, userID, courseID string) (*model.Cart, error)
	ClearFn  func(ctx context.Context, userID string) error
}

// Cart returns configured cart or an empty one.
func (s CartFacadeStub) Cart(ctx context.Context, userID string) (*model.Cart, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return model.NewCart(), nil
}

// AddToCart returns a cart holding the added course unless overridden.
func (s CartFacadeStub) AddToCart(ctx context.Context, userID, courseID string) (*model.Cart, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, courseID)
	}
	return model.NewCart(model.CartItem{CourseID: courseID, Course: Course(courseID, "49.99")}), nil
}

// RemoveFromCart returns an empty cart unless overridden.
func (s CartFacadeStub) RemoveFromCart(ctx context.Context, userID, courseID string) (*model.Cart, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, courseID)
	}
	return model.NewCart(), nil
}

// ClearCart executes configured handler.
func (s CartFacadeStub) ClearCart(ctx context.Context, userID string) error {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, userID)
	}
	return nil
}

// OrderFacadeStub provides controllable behaviour for order and checkout endpoints.
type OrderFacadeStub struct {
	CreateFn   func(ctx context.Context, userID string) (*model.Order, error)
	OrdersFn   func(ctx context.Context, userID string) ([]model.Order, error)
	OrderFn    func(ctx context.Context, userID, orderID string) (*model.Order, error)
	PayFn      func(ctx context.Context, userID, orderID string, details model.PaymentDetails) (*model.PaymentResult, error)
	CheckoutFn func(ctx context.Context, userID string, details model.PaymentDetails) (*model.PaymentResult, error)
}

// PendingOrder builds a pending single-item order owned by userID.
func PendingOrder(id, userID string) model.Order {
	course := Course("course-1", "49.99")
	return model.Order{
		ID:        id,
		UserID:    userID,
		Items:     []model.CartItem{{CourseID: course.ID, Course: course}},
		Total:     decimal.RequireFromString("49.99"),
		Currency:  model.DefaultCurrency,
		Status:    model.OrderStatusPending,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// CreateOrder returns configured order or a pending one.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, userID string) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID)
	}
	order := PendingOrder("order-1", userID)
	return &order, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID string) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{PendingOrder("order-1", userID)}, nil
}

// Order returns configured order or a pending one with the requested id.
func (s OrderFacadeStub) Order(ctx context.Context, userID, orderID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, orderID)
	}
	order := PendingOrder(orderID, userID)
	return &order, nil
}

// PayOrder returns configured result or an approved payment.
func (s OrderFacadeStub) PayOrder(ctx context.Context, userID, orderID string, details model.PaymentDetails) (*model.PaymentResult, error) {
	if s.PayFn != nil {
		return s.PayFn(ctx, userID, orderID, details)
	}
	return approvedResult(orderID, userID), nil
}

// Checkout returns configured result or an approved payment.
func (s OrderFacadeStub) Checkout(ctx context.Context, userID string, details model.PaymentDetails) (*model.PaymentResult, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, details)
	}
	return approvedResult("order-1", userID), nil
}

func approvedResult(orderID, userID string) *model.PaymentResult {
	order := PendingOrder(orderID, userID)
	order.Apply(model.StatusChange{
		From:          model.OrderStatusPending,
		To:            model.OrderStatusPaid,
		At:            order.CreatedAt.Add(time.Minute),
		TransactionID: "txn-1",
	})
	return &model.PaymentResult{Success: true, TransactionID: "txn-1", Order: &order}
}

// EnrollmentFacadeStub simulates enrollment reads.
type EnrollmentFacadeStub struct {
	EnrollmentsFn func(ctx context.Context, userID string) ([]model.Enrollment, error)
	IsEnrolledFn  func(ctx context.Context, userID, courseID string) (bool, error)
}

// Enrollments returns configured enrollments or a single one.
func (s EnrollmentFacadeStub) Enrollments(ctx context.Context, userID string) ([]model.Enrollment, error) {
	if s.EnrollmentsFn != nil {
		return s.EnrollmentsFn(ctx, userID)
	}
	course := Course("course-1", "49.99")
	return []model.Enrollment{{ID: "enr-1", UserID: userID, CourseID: course.ID, Course: course}}, nil
}

// IsEnrolled returns configured answer or true.
func (s EnrollmentFacadeStub) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	if s.IsEnrolledFn != nil {
		return s.IsEnrolledFn(ctx, userID, courseID)
	}
	return true, nil
}

// HealthFacadeStub reports configured storage health.
type HealthFacadeStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthFacadeStub) HealthCheck(context.Context) error {
	return s.Err
}

// StorefrontFacadeStub aggregates every stub used by the HTTP layer.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	OrderFacadeStub
	EnrollmentFacadeStub
	HealthFacadeStub
}

// FulfilmentFacadeStub mimics reconciler interactions with the storefront facade.
type FulfilmentFacadeStub struct {
	Orders          [][]model.Order
	OrdersFn        func(context.Context, int) ([]model.Order, error)
	FulfilFn        func(context.Context, *model.Order) ([]model.Enrollment, error)
	Fulfilled       []string
	mu              sync.Mutex
	ordersCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *FulfilmentFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *FulfilmentFacadeStub) Unlock() { s.mu.Unlock() }

// PendingFulfilment returns batches from configured queue.
func (s *FulfilmentFacadeStub) PendingFulfilment(ctx context.Context, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.ordersCallCount, 1)
	if int(call) <= len(s.Orders) {
		return s.Orders[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// FulfilOrder records the order and delegates to FulfilFn when set.
func (s *FulfilmentFacadeStub) FulfilOrder(ctx context.Context, order *model.Order) ([]model.Enrollment, error) {
	s.mu.Lock()
	s.Fulfilled = append(s.Fulfilled, order.ID)
	s.mu.Unlock()
	if s.FulfilFn != nil {
		return s.FulfilFn(ctx, order)
	}
	enrollments := make([]model.Enrollment, 0, len(order.Items))
	for _, item := range order.Items {
		enrollments = append(enrollments, model.Enrollment{UserID: order.UserID, CourseID: item.CourseID})
	}
	return enrollments, nil
}

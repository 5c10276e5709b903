package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/coursemart/internal/domain/errors"
	"github.com/polkiloo/coursemart/internal/domain/model"
	"github.com/polkiloo/coursemart/internal/server/http/dto"
	"github.com/polkiloo/coursemart/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/coursemart/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func asUser(id string) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserContextKey, &model.User{ID: id, Role: model.RoleStudent})
	}
}

func performRequest(t *testing.T, method, pattern, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, pattern, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, resp *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope %q: %v", resp.Body.String(), err)
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data %s: %v", env.Data, err)
		}
	}
	return env
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != "" {
		t.Fatalf("expected empty id when not set, got %q", got)
	}

	asUser("user-42")(c)
	if got := CurrentUserID(c); got != "user-42" {
		t.Fatalf("expected user-42, got %q", got)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domainErrors.ErrInvalidInput, http.StatusBadRequest},
		{domainErrors.ErrEmptyCart, http.StatusBadRequest},
		{domainErrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{domainErrors.ErrNotFound, http.StatusNotFound},
		{domainErrors.ErrAlreadyExists, http.StatusConflict},
		{domainErrors.ErrAlreadyEnrolled, http.StatusConflict},
		{domainErrors.ErrInvalidOrderState, http.StatusConflict},
		{domainErrors.ErrInvalidPaymentDetails, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		wrapped := errors.Join(errors.New("context"), tt.err)
		if got := statusFor(wrapped); got != tt.want {
			t.Fatalf("%v: expected %d, got %d", tt.err, tt.want, got)
		}
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	name := testhelpers.RandomASCIIString(5, 12)
	email := testhelpers.RandomASCIIString(5, 10) + "@example.com"
	body, _ := json.Marshal(dto.RegisterRequest{Name: name, Email: email, Password: "secret", Role: "instructor"})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(_ context.Context, gotName, gotEmail, gotPassword string, role model.Role) (*model.User, string, error) {
		if gotName != name || gotEmail != email || gotPassword != "secret" || role != model.RoleInstructor {
			t.Fatalf("unexpected fields passed to facade: %q %q %q %q", gotName, gotEmail, gotPassword, role)
		}
		return &model.User{ID: "user-7", Name: gotName, Email: gotEmail, Role: role}, "session-token", nil
	}})

	resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}

	var data dto.AuthResponse
	env := decode(t, resp, &data)
	if !env.Success || data.Token != "session-token" || data.User.ID != "user-7" || data.User.Role != "instructor" {
		t.Fatalf("unexpected response %+v %+v", env, data)
	}

	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	found := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == middleware.AuthCookieName && cookie.Value == "session-token" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %s cookie", middleware.AuthCookieName)
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	valid := []byte(`{"name":"John","email":"john@example.com","password":"pw"}`)
	failWith := func(err error) testhelpers.AuthFacadeStub {
		return testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string, model.Role) (*model.User, string, error) {
			return nil, "", err
		}}
	}
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "missing fields", body: []byte(`{"email":"john@example.com"}`), status: http.StatusBadRequest},
		{name: "invalid input", body: valid, facade: failWith(domainErrors.ErrInvalidInput), status: http.StatusBadRequest},
		{name: "already exists", body: valid, facade: failWith(domainErrors.ErrAlreadyExists), status: http.StatusConflict},
		{name: "internal", body: valid, facade: failWith(errors.New("boom")), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(tt.facade).Register, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			env := decode(t, resp, nil)
			if env.Success || env.Error == "" {
				t.Fatalf("expected failure envelope, got %+v", env)
			}
			if tt.status == http.StatusInternalServerError && env.Error != "internal server error" {
				t.Fatalf("expected internal details to be hidden, got %q", env.Error)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.LoginRequest{Email: "student@example.com", Password: "student123"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var data dto.AuthResponse
	decode(t, resp, &data)
	if data.Token != "token" || data.User.Email != "student@example.com" {
		t.Fatalf("unexpected login payload %+v", data)
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	valid := []byte(`{"email":"a@example.com","password":"b"}`)
	failWith := func(err error) testhelpers.AuthFacadeStub {
		return testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
			return nil, "", err
		}}
	}
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("{"), status: http.StatusBadRequest},
		{name: "missing password", body: []byte(`{"email":"a@example.com"}`), status: http.StatusBadRequest},
		{name: "invalid credentials", body: valid, facade: failWith(domainErrors.ErrInvalidCredentials), status: http.StatusUnauthorized},
		{name: "internal", body: valid, facade: failWith(errors.New("boom")), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(tt.facade).Login, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerMe(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/me", "/me", NewAuthHandler(testhelpers.AuthFacadeStub{}).Me, asUser("user-3"), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var user dto.UserResponse
	decode(t, resp, &user)
	if user.ID != "user-3" {
		t.Fatalf("expected user-3, got %+v", user)
	}

	facade := testhelpers.AuthFacadeStub{CurrentUserFn: func(context.Context, string) (*model.User, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp = performRequest(t, http.MethodGet, "/me", "/me", NewAuthHandler(facade).Me, asUser("gone"), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestCatalogHandlerList(t *testing.T) {
	var got model.CourseFilter
	facade := testhelpers.CatalogFacadeStub{CoursesFn: func(_ context.Context, filter model.CourseFilter) ([]model.Course, error) {
		got = filter
		return nil, nil
	}}
	resp := performRequest(t, http.MethodGet, "/courses", "/courses?q=react&category=Web+Development&level=beginner", NewCatalogHandler(facade).List, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got.Query != "react" || got.Category != "Web Development" || got.Level != model.LevelBeginner {
		t.Fatalf("unexpected filter %+v", got)
	}
	env := decode(t, resp, nil)
	if string(env.Data) != "[]" {
		t.Fatalf("expected empty list, got %s", env.Data)
	}

	facade = testhelpers.CatalogFacadeStub{CoursesFn: func(context.Context, model.CourseFilter) ([]model.Course, error) {
		return nil, errors.New("db down")
	}}
	resp = performRequest(t, http.MethodGet, "/courses", "/courses", NewCatalogHandler(facade).List, nil, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestCatalogHandlerGet(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/courses/:id", "/courses/course-2", NewCatalogHandler(testhelpers.CatalogFacadeStub{}).Get, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var course model.Course
	decode(t, resp, &course)
	if course.ID != "course-2" || course.Price.StringFixed(2) != "49.99" {
		t.Fatalf("unexpected course %+v", course)
	}

	facade := testhelpers.CatalogFacadeStub{CourseFn: func(context.Context, string) (*model.Course, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp = performRequest(t, http.MethodGet, "/courses/:id", "/courses/missing", NewCatalogHandler(facade).Get, nil, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestCartHandler(t *testing.T) {
	handler := NewCartHandler(testhelpers.CartFacadeStub{})

	resp := performRequest(t, http.MethodGet, "/cart", "/cart", handler.Get, asUser("u1"), nil, nil)
	var cart dto.CartResponse
	decode(t, resp, &cart)
	if resp.Code != http.StatusOK || cart.ItemCount != 0 || cart.Total != "0.00" || cart.Items == nil {
		t.Fatalf("unexpected empty cart %d %+v", resp.Code, cart)
	}

	resp = performRequest(t, http.MethodPost, "/cart/items", "/cart/items", handler.Add, asUser("u1"), []byte(`{"courseId":"course-1"}`), jsonHeaders)
	decode(t, resp, &cart)
	if resp.Code != http.StatusOK || cart.ItemCount != 1 || cart.Total != "49.99" {
		t.Fatalf("unexpected cart after add %d %+v", resp.Code, cart)
	}

	resp = performRequest(t, http.MethodDelete, "/cart/items/:courseId", "/cart/items/course-1", handler.Remove, asUser("u1"), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 on remove, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodDelete, "/cart", "/cart", handler.Clear, asUser("u1"), nil, nil)
	if env := decode(t, resp, nil); resp.Code != http.StatusOK || !env.Success {
		t.Fatalf("unexpected clear response %d %+v", resp.Code, env)
	}
}

func TestCartHandlerAddFailures(t *testing.T) {
	failWith := func(err error) testhelpers.CartFacadeStub {
		return testhelpers.CartFacadeStub{AddFn: func(context.Context, string, string) (*model.Cart, error) {
			return nil, err
		}}
	}
	tests := []struct {
		name   string
		facade testhelpers.CartFacadeStub
		body   []byte
		status int
	}{
		{name: "missing course id", body: []byte(`{}`), status: http.StatusBadRequest},
		{name: "unknown course", body: []byte(`{"courseId":"x"}`), facade: failWith(domainErrors.ErrNotFound), status: http.StatusNotFound},
		{name: "already enrolled", body: []byte(`{"courseId":"x"}`), facade: failWith(domainErrors.ErrAlreadyEnrolled), status: http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/cart/items", "/cart/items", NewCartHandler(tt.facade).Add, asUser("u1"), tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}

	facade := testhelpers.CartFacadeStub{ClearFn: func(context.Context, string) error { return errors.New("boom") }}
	resp := performRequest(t, http.MethodDelete, "/cart", "/cart", NewCartHandler(facade).Clear, asUser("u1"), nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestOrderHandlerCreateAndRead(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})

	resp := performRequest(t, http.MethodPost, "/orders", "/orders", handler.Create, asUser("u1"), nil, nil)
	var order dto.OrderResponse
	decode(t, resp, &order)
	if resp.Code != http.StatusCreated || order.Status != "pending" || order.Total != "49.99" || order.UserID != "u1" {
		t.Fatalf("unexpected create response %d %+v", resp.Code, order)
	}

	resp = performRequest(t, http.MethodGet, "/orders", "/orders", handler.List, asUser("u1"), nil, nil)
	var orders []dto.OrderResponse
	decode(t, resp, &orders)
	if resp.Code != http.StatusOK || len(orders) != 1 {
		t.Fatalf("unexpected list response %d %+v", resp.Code, orders)
	}

	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/order-9", handler.Get, asUser("u1"), nil, nil)
	decode(t, resp, &order)
	if resp.Code != http.StatusOK || order.ID != "order-9" {
		t.Fatalf("unexpected get response %d %+v", resp.Code, order)
	}

	empty := NewOrderHandler(testhelpers.OrderFacadeStub{
		CreateFn: func(context.Context, string) (*model.Order, error) { return nil, domainErrors.ErrEmptyCart },
		OrdersFn: func(context.Context, string) ([]model.Order, error) { return nil, nil },
		OrderFn:  func(context.Context, string, string) (*model.Order, error) { return nil, domainErrors.ErrNotFound },
	})
	resp = performRequest(t, http.MethodPost, "/orders", "/orders", empty.Create, asUser("u1"), nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for empty cart, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodGet, "/orders", "/orders", empty.List, asUser("u1"), nil, nil)
	if env := decode(t, resp, nil); resp.Code != http.StatusOK || string(env.Data) != "[]" {
		t.Fatalf("expected empty list, got %d %s", resp.Code, env.Data)
	}
	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/other", empty.Get, asUser("u1"), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestOrderHandlerPay(t *testing.T) {
	body, _ := json.Marshal(dto.PaymentRequest{CardNumber: "4111111111111111", ExpiryDate: "12/30", CVV: "123", Name: "John Student"})

	var gotOrder string
	var gotDetails model.PaymentDetails
	facade := testhelpers.OrderFacadeStub{}
	facade.PayFn = func(ctx context.Context, userID, orderID string, details model.PaymentDetails) (*model.PaymentResult, error) {
		gotOrder, gotDetails = orderID, details
		return testhelpers.OrderFacadeStub{}.PayOrder(ctx, userID, orderID, details)
	}
	resp := performRequest(t, http.MethodPost, "/orders/:id/pay", "/orders/order-5/pay", NewOrderHandler(facade).Pay, asUser("u1"), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotOrder != "order-5" || gotDetails.CVV != "123" || gotDetails.CardNumber != "4111111111111111" {
		t.Fatalf("unexpected facade call %q %+v", gotOrder, gotDetails)
	}
	var payment dto.PaymentResponse
	decode(t, resp, &payment)
	if !payment.Success || payment.TransactionID != "txn-1" || payment.Order == nil || payment.Order.Status != "paid" {
		t.Fatalf("unexpected payment payload %+v", payment)
	}
}

func TestOrderHandlerPayFailures(t *testing.T) {
	valid := []byte(`{"cardNumber":"4111111111111111","expiryDate":"12/30","cvv":"123","name":"J"}`)
	failWith := func(err error) testhelpers.OrderFacadeStub {
		return testhelpers.OrderFacadeStub{PayFn: func(context.Context, string, string, model.PaymentDetails) (*model.PaymentResult, error) {
			return nil, err
		}}
	}
	declined := testhelpers.OrderFacadeStub{PayFn: func(_ context.Context, userID, orderID string, _ model.PaymentDetails) (*model.PaymentResult, error) {
		order := testhelpers.PendingOrder(orderID, userID)
		order.Apply(model.StatusChange{From: model.OrderStatusPending, To: model.OrderStatusFailed, FailureReason: "Insufficient funds"})
		return &model.PaymentResult{Success: false, Reason: "Insufficient funds", Order: &order}, nil
	}}

	tests := []struct {
		name   string
		facade testhelpers.OrderFacadeStub
		body   []byte
		status int
		reason string
	}{
		{name: "malformed", body: []byte("nope"), status: http.StatusBadRequest},
		{name: "invalid details", body: valid, facade: failWith(domainErrors.ErrInvalidPaymentDetails), status: http.StatusUnprocessableEntity},
		{name: "not pending", body: valid, facade: failWith(domainErrors.ErrInvalidOrderState), status: http.StatusConflict},
		{name: "foreign order", body: valid, facade: failWith(domainErrors.ErrNotFound), status: http.StatusNotFound},
		{name: "declined", body: valid, facade: declined, status: http.StatusPaymentRequired, reason: "Insufficient funds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/orders/:id/pay", "/orders/o1/pay", NewOrderHandler(tt.facade).Pay, asUser("u1"), tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			var payment dto.PaymentResponse
			env := decode(t, resp, &payment)
			if env.Success {
				t.Fatalf("expected failure envelope")
			}
			if tt.reason != "" && (env.Error != tt.reason || payment.Order == nil || payment.Order.Status != "failed") {
				t.Fatalf("unexpected decline payload %+v %+v", env, payment)
			}
		})
	}
}

func TestOrderHandlerCheckout(t *testing.T) {
	body := []byte(`{"cardNumber":"4111111111111111","expiryDate":"12/30","cvv":"123","name":"J"}`)
	resp := performRequest(t, http.MethodPost, "/checkout", "/checkout", NewOrderHandler(testhelpers.OrderFacadeStub{}).Checkout, asUser("u1"), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	pending := testhelpers.OrderFacadeStub{CheckoutFn: func(_ context.Context, userID string, _ model.PaymentDetails) (*model.PaymentResult, error) {
		result, _ := testhelpers.OrderFacadeStub{}.Checkout(context.Background(), userID, model.PaymentDetails{})
		result.FulfilmentPending = true
		return result, nil
	}}
	resp = performRequest(t, http.MethodPost, "/checkout", "/checkout", NewOrderHandler(pending).Checkout, asUser("u1"), body, jsonHeaders)
	var payment dto.PaymentResponse
	decode(t, resp, &payment)
	if resp.Code != http.StatusOK || !payment.Success || !payment.FulfilmentPending {
		t.Fatalf("expected pending fulfilment to be reported, got %d %+v", resp.Code, payment)
	}

	facade := testhelpers.OrderFacadeStub{CheckoutFn: func(context.Context, string, model.PaymentDetails) (*model.PaymentResult, error) {
		return nil, domainErrors.ErrEmptyCart
	}}
	resp = performRequest(t, http.MethodPost, "/checkout", "/checkout", NewOrderHandler(facade).Checkout, asUser("u1"), body, jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for empty cart, got %d", resp.Code)
	}
}

func TestEnrollmentHandler(t *testing.T) {
	handler := NewEnrollmentHandler(testhelpers.EnrollmentFacadeStub{})

	resp := performRequest(t, http.MethodGet, "/enrollments", "/enrollments", handler.List, asUser("u1"), nil, nil)
	var enrollments []dto.EnrollmentResponse
	decode(t, resp, &enrollments)
	if resp.Code != http.StatusOK || len(enrollments) != 1 || enrollments[0].CourseID != "course-1" {
		t.Fatalf("unexpected enrollments %d %+v", resp.Code, enrollments)
	}

	resp = performRequest(t, http.MethodGet, "/enrollments/:courseId", "/enrollments/course-1", handler.Status, asUser("u1"), nil, nil)
	var status dto.EnrollmentStatusResponse
	decode(t, resp, &status)
	if resp.Code != http.StatusOK || !status.Enrolled || status.CourseID != "course-1" {
		t.Fatalf("unexpected status %d %+v", resp.Code, status)
	}

	failing := NewEnrollmentHandler(testhelpers.EnrollmentFacadeStub{
		IsEnrolledFn: func(context.Context, string, string) (bool, error) { return false, errors.New("boom") },
	})
	resp = performRequest(t, http.MethodGet, "/enrollments/:courseId", "/enrollments/course-1", failing.Status, asUser("u1"), nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/health", "/health", NewHealthHandler(testhelpers.HealthFacadeStub{}, testhelpers.DiscardLogger()).Check, nil, nil, nil)
	var health dto.HealthResponse
	decode(t, resp, &health)
	if resp.Code != http.StatusOK || health.Status != "ok" {
		t.Fatalf("unexpected health %d %+v", resp.Code, health)
	}

	resp = performRequest(t, http.MethodGet, "/health", "/health", NewHealthHandler(testhelpers.HealthFacadeStub{Err: errors.New("down")}, testhelpers.DiscardLogger()).Check, nil, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}

// Package memory keeps every repository in process memory. It backs the
// default development setup and tests.
package memory

import (
	"context"
	"sync"

	"github.com/polkiloo/coursemart/internal/domain/model"
	"github.com/polkiloo/coursemart/internal/domain/repository"
)

// Storage guards all collections with one lock so multi-collection reads stay consistent.
type Storage struct {
	mu sync.RWMutex

	users       map[string]model.User
	emails      map[string]string
	courses     map[string]model.Course
	courseOrder []string
	carts       map[string]model.CartSnapshot
	orders      map[string]model.Order
	enrollments map[string][]model.Enrollment
}

var _ repository.Factory = (*Storage)(nil)

// New creates empty storage.
func New() *Storage {
	return &Storage{
		users:       make(map[string]model.User),
		emails:      make(map[string]string),
		courses:     make(map[string]model.Course),
		carts:       make(map[string]model.CartSnapshot),
		orders:      make(map[string]model.Order),
		enrollments: make(map[string][]model.Enrollment),
	}
}

// Users returns repository for users.
func (s *Storage) Users() repository.UserRepository { return &userRepository{storage: s} }

// Courses returns repository for the catalog.
func (s *Storage) Courses() repository.CourseRepository { return &courseRepository{storage: s} }

// Carts returns repository for cart snapshots.
func (s *Storage) Carts() repository.CartRepository { return &cartRepository{storage: s} }

// Orders returns repository for orders.
func (s *Storage) Orders() repository.OrderRepository { return &orderRepository{storage: s} }

// Enrollments returns repository for enrollments.
func (s *Storage) Enrollments() repository.EnrollmentRepository {
	return &enrollmentRepository{storage: s}
}

// HealthCheck always succeeds.
func (s *Storage) HealthCheck(context.Context) error { return nil }

// Close is a no-op.
func (s *Storage) Close() {}

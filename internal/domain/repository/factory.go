package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Courses() CourseRepository
	Carts() CartRepository
	Orders() OrderRepository
	Enrollments() EnrollmentRepository
	HealthCheck(ctx context.Context) error
	Close()
}

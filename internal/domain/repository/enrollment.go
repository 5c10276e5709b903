package repository

import (
	"context"

	"github.com/polkiloo/coursemart/internal/domain/model"
)

// EnrollmentRepository manages course access grants.
type EnrollmentRepository interface {
	// Create stores enrollment unless one exists for the same user and course.
	// The stored enrollment is returned with created reporting whether it is new.
	Create(ctx context.Context, enrollment model.Enrollment) (*model.Enrollment, bool, error)
	Exists(ctx context.Context, userID, courseID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]model.Enrollment, error)
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/coursemart/internal/domain/model"
	"github.com/polkiloo/coursemart/internal/domain/repository"
)

// EnrollmentUseCase grants and lists course access.
type EnrollmentUseCase struct {
	enrollments repository.EnrollmentRepository
	now         func() time.Time
}

// NewEnrollmentUseCase constructs EnrollmentUseCase.
func NewEnrollmentUseCase(enrollments repository.EnrollmentRepository) *EnrollmentUseCase {
	return &EnrollmentUseCase{enrollments: enrollments, now: time.Now}
}

// Enroll grants access to course. An existing enrollment is returned unchanged.
func (u *EnrollmentUseCase) Enroll(ctx context.Context, userID string, course model.Course) (*model.Enrollment, error) {
	enrollment, _, err := u.enrollments.Create(ctx, model.Enrollment{
		ID:         uuid.NewString(),
		UserID:     userID,
		CourseID:   course.ID,
		Course:     course.Clone(),
		EnrolledAt: u.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("enroll %s in %s: %w", userID, course.ID, err)
	}
	return enrollment, nil
}

// EnrollAll enrolls user in every item, attempting all of them even when some fail.
func (u *EnrollmentUseCase) EnrollAll(ctx context.Context, userID string, items []model.CartItem) ([]model.Enrollment, error) {
	var (
		out  []model.Enrollment
		errs []error
	)
	for _, item := range items {
		course := item.Course
		course.ID = item.CourseID
		enrollment, err := u.Enroll(ctx, userID, course)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, *enrollment)
	}
	return out, errors.Join(errs...)
}

// IsEnrolled reports whether user has access to course.
func (u *EnrollmentUseCase) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	return u.enrollments.Exists(ctx, userID, courseID)
}

// ListForUser returns enrollments in enrollment order.
func (u *EnrollmentUseCase) ListForUser(ctx context.Context, userID string) ([]model.Enrollment, error) {
	return u.enrollments.ListByUser(ctx, userID)
}

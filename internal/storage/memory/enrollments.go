package memory

import (
	"context"

	"github.com/polkiloo/coursemart/internal/domain/model"
)

type enrollmentRepository struct {
	storage *Storage
}

func (r *enrollmentRepository) Create(_ context.Context, enrollment model.Enrollment) (*model.Enrollment, bool, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.enrollments[enrollment.UserID] {
		if existing.CourseID == enrollment.CourseID {
			existing.Course = existing.Course.Clone()
			return &existing, false, nil
		}
	}

	enrollment.Course = enrollment.Course.Clone()
	s.enrollments[enrollment.UserID] = append(s.enrollments[enrollment.UserID], enrollment)
	enrollment.Course = enrollment.Course.Clone()
	return &enrollment, true, nil
}

func (r *enrollmentRepository) Exists(_ context.Context, userID, courseID string) (bool, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, existing := range s.enrollments[userID] {
		if existing.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (r *enrollmentRepository) ListByUser(_ context.Context, userID string) ([]model.Enrollment, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.enrollments[userID]
	out := make([]model.Enrollment, len(list))
	for i, e := range list {
		out[i] = e
		out[i].Course = e.Course.Clone()
	}
	return out, nil
}

package memory

import (
	"context"

	domainErrors "github.com/polkiloo/coursemart/internal/domain/errors"
	"github.com/polkiloo/coursemart/internal/domain/model"
)

type courseRepository struct {
	storage *Storage
}

func (r *courseRepository) List(_ context.Context, filter model.CourseFilter) ([]model.Course, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Course, 0, len(s.courseOrder))
	for _, id := range s.courseOrder {
		course := s.courses[id]
		if filter.Matches(course) {
			out = append(out, course.Clone())
		}
	}
	return out, nil
}

func (r *courseRepository) GetByID(_ context.Context, id string) (*model.Course, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.courses[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	course = course.Clone()
	return &course, nil
}

func (r *courseRepository) Upsert(_ context.Context, course model.Course) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.courses[course.ID]; !exists {
		s.courseOrder = append(s.courseOrder, course.ID)
	}
	s.courses[course.ID] = course.Clone()
	return nil
}

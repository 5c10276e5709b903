package usecase

import (
	"context"

	domainErrors "github.com/polkiloo/coursemart/internal/domain/errors"
	"github.com/polkiloo/coursemart/internal/domain/model"
	"github.com/polkiloo/coursemart/internal/domain/repository"
)

// CatalogUseCase exposes published courses.
type CatalogUseCase struct {
	courses repository.CourseRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(courses repository.CourseRepository) *CatalogUseCase {
	return &CatalogUseCase{courses: courses}
}

// List returns published courses matching filter.
func (u *CatalogUseCase) List(ctx context.Context, filter model.CourseFilter) ([]model.Course, error) {
	return u.courses.List(ctx, filter)
}

// Get returns a published course. Drafts are reported as missing.
func (u *CatalogUseCase) Get(ctx context.Context, id string) (*model.Course, error) {
	course, err := u.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !course.Published {
		return nil, domainErrors.ErrNotFound
	}
	return course, nil
}

package repository

import (
	"context"

	"github.com/polkiloo/coursemart/internal/domain/model"
)

// CourseRepository provides read access to the catalog.
type CourseRepository interface {
	List(ctx context.Context, filter model.CourseFilter) ([]model.Course, error)
	GetByID(ctx context.Context, id string) (*model.Course, error)
	// Upsert is used by seeding and administrative tooling.
	Upsert(ctx context.Context, course model.Course) error
}

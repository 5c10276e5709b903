package usecase

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/polkiloo/coursemart/internal/domain/errors"
	"github.com/polkiloo/coursemart/internal/domain/model"
	"github.com/polkiloo/coursemart/internal/domain/repository"
)

// CartUseCase manages per-user carts persisted as snapshots.
type CartUseCase struct {
	carts       repository.CartRepository
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	locks       *keyedMutex
	now         func() time.Time
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, courses repository.CourseRepository, enrollments repository.EnrollmentRepository) *CartUseCase {
	return &CartUseCase{
		carts:       carts,
		courses:     courses,
		enrollments: enrollments,
		locks:       newKeyedMutex(),
		now:         time.Now,
	}
}

// Get loads the user's cart.
func (u *CartUseCase) Get(ctx context.Context, userID string) (*model.Cart, error) {
	return u.load(ctx, userID)
}

// AddCourse puts a published course the user does not own yet into the cart.
func (u *CartUseCase) AddCourse(ctx context.Context, userID, courseID string) (*model.Cart, error) {
	course, err := u.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.Published {
		return nil, domainErrors.ErrNotFound
	}

	enrolled, err := u.enrollments.Exists(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, domainErrors.ErrAlreadyEnrolled
	}

	return u.mutate(ctx, userID, func(cart *model.Cart) bool {
		return cart.Add(model.CartItem{CourseID: course.ID, Course: *course, AddedAt: u.now().UTC()})
	})
}

// RemoveCourse drops a course from the cart. Missing courses are ignored.
func (u *CartUseCase) RemoveCourse(ctx context.Context, userID, courseID string) (*model.Cart, error) {
	return u.mutate(ctx, userID, func(cart *model.Cart) bool {
		return cart.Remove(courseID)
	})
}

// RemoveCourses drops every listed course, leaving items added since untouched.
func (u *CartUseCase) RemoveCourses(ctx context.Context, userID string, courseIDs []string) error {
	_, err := u.mutate(ctx, userID, func(cart *model.Cart) bool {
		changed := false
		for _, id := range courseIDs {
			if cart.Remove(id) {
				changed = true
			}
		}
		return changed
	})
	return err
}

// Clear empties the cart.
func (u *CartUseCase) Clear(ctx context.Context, userID string) error {
	unlock := u.locks.Lock(userID)
	defer unlock()

	if err := u.carts.Delete(ctx, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (u *CartUseCase) mutate(ctx context.Context, userID string, fn func(*model.Cart) bool) (*model.Cart, error) {
	unlock := u.locks.Lock(userID)
	defer unlock()

	cart, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !fn(cart) {
		return cart, nil
	}
	if err := u.carts.Save(ctx, userID, cart.Snapshot(u.now().UTC())); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

func (u *CartUseCase) load(ctx context.Context, userID string) (*model.Cart, error) {
	snapshot, err := u.carts.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return model.CartFromSnapshot(snapshot)
}

package sqlite

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainErrors "github.com/polkiloo/coursemart/internal/domain/errors"
	"github.com/polkiloo/coursemart/internal/domain/model"
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainErrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domainErrors.ErrAlreadyExists
	default:
		return err
	}
}

// --- UserRepository implementation ---

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	rec := newUserRecord(user)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translate(err)
	}
	out := rec.toModel()
	return &out, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	out := rec.toModel()
	return &out, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	out := rec.toModel()
	return &out, nil
}

// --- CourseRepository implementation ---

type courseRepository struct {
	db *gorm.DB
}

func (r *courseRepository) List(ctx context.Context, filter model.CourseFilter) ([]model.Course, error) {
	query := r.db.WithContext(ctx).Where("published = ?", true)
	if filter.Category != "" {
		query = query.Where("lower(category) = lower(?)", filter.Category)
	}
	if filter.Level != "" {
		query = query.Where("lower(level) = lower(?)", string(filter.Level))
	}
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		query = query.Where(
			"instr(lower(title), ?) > 0 OR instr(lower(description), ?) > 0 OR instr(lower(instructor_name), ?) > 0",
			q, q, q,
		)
	}

	var recs []courseRecord
	if err := query.Order("created_at, id").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]model.Course, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Data)
	}
	return out, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var rec courseRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return &rec.Data, nil
}

func (r *courseRepository) Upsert(ctx context.Context, course model.Course) error {
	rec := newCourseRecord(course)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

// --- CartRepository implementation ---

type cartRepository struct {
	db *gorm.DB
}

func (r *cartRepository) Load(ctx context.Context, userID string) (model.CartSnapshot, error) {
	var rec cartRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartSnapshot{Version: model.CartSchemaVersion}, nil
	}
	if err != nil {
		return model.CartSnapshot{}, err
	}
	return rec.Snapshot, nil
}

func (r *cartRepository) Save(ctx context.Context, userID string, snapshot model.CartSnapshot) error {
	rec := cartRecord{UserID: userID, Snapshot: snapshot, UpdatedAt: snapshot.UpdatedAt}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

func (r *cartRepository) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&cartRecord{}).Error
}

// --- OrderRepository implementation ---

type orderRepository struct {
	db *gorm.DB
}

func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	rec := newOrderRecord(order)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translate(err)
	}
	out := order.Clone()
	return &out, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var rec orderRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	out := rec.toModel()
	return &out, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	var recs []orderRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toOrders(recs), nil
}

// TransitionStatus guards the update with the expected status so concurrent writers cannot both win.
func (r *orderRepository) TransitionStatus(ctx context.Context, id string, change model.StatusChange) (*model.Order, error) {
	var updated model.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec orderRecord
		if err := tx.Where("id = ?", id).First(&rec).Error; err != nil {
			return translate(err)
		}
		if rec.Status != string(change.From) {
			return domainErrors.ErrInvalidOrderState
		}

		order := rec.toModel()
		order.Apply(change)
		result := tx.Model(&orderRecord{}).
			Where("id = ? AND status = ?", id, string(change.From)).
			Updates(map[string]any{
				"status":         string(order.Status),
				"failure_reason": order.FailureReason,
				"transaction_id": order.TransactionID,
				"paid_at":        order.PaidAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainErrors.ErrInvalidOrderState
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *orderRepository) ListUnfulfilled(ctx context.Context, limit int) ([]model.Order, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND fulfilled_at IS NULL", string(model.OrderStatusPaid)).
		Order("paid_at")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var recs []orderRecord
	if err := query.Find(&recs).Error; err != nil {
		return nil, err
	}
	return toOrders(recs), nil
}

func (r *orderRepository) MarkFulfilled(ctx context.Context, id string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ?", id).
		Update("fulfilled_at", gorm.Expr("COALESCE(fulfilled_at, ?)", at))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func toOrders(recs []orderRecord) []model.Order {
	if len(recs) == 0 {
		return nil
	}
	out := make([]model.Order, len(recs))
	for i, rec := range recs {
		out[i] = rec.toModel()
	}
	return out
}

// --- EnrollmentRepository implementation ---

type enrollmentRepository struct {
	db *gorm.DB
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment model.Enrollment) (*model.Enrollment, bool, error) {
	rec := newEnrollmentRecord(enrollment)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}}, DoNothing: true}).
		Create(&rec)
	if result.Error != nil {
		return nil, false, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		var existing enrollmentRecord
		err := r.db.WithContext(ctx).
			Where("user_id = ? AND course_id = ?", enrollment.UserID, enrollment.CourseID).
			First(&existing).Error
		if err != nil {
			return nil, false, translate(err)
		}
		out := existing.toModel()
		return &out, false, nil
	}
	out := rec.toModel()
	return &out, true, nil
}

func (r *enrollmentRepository) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&enrollmentRecord{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *enrollmentRepository) ListByUser(ctx context.Context, userID string) ([]model.Enrollment, error) {
	var recs []enrollmentRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("enrolled_at, id").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	out := make([]model.Enrollment, len(recs))
	for i, rec := range recs {
		out[i] = rec.toModel()
	}
	return out, nil
}

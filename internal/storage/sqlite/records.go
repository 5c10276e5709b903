package sqlite

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/coursemart/internal/domain/model"
)

type userRecord struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	Name         string `gorm:"not null"`
	Role         string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

func newUserRecord(u model.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         string(u.Role),
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (r userRecord) toModel() model.User {
	return model.User{
		ID:           r.ID,
		Email:        r.Email,
		Name:         r.Name,
		Role:         model.Role(r.Role),
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

// courseRecord keeps filterable columns next to the full JSON document.
type courseRecord struct {
	ID             string       `gorm:"primaryKey"`
	Title          string       `gorm:"not null"`
	Description    string       `gorm:"not null"`
	InstructorName string       `gorm:"not null"`
	Category       string       `gorm:"index"`
	Level          string       `gorm:"index"`
	Published      bool         `gorm:"index"`
	Data           model.Course `gorm:"serializer:json"`
	CreatedAt      time.Time
}

func (courseRecord) TableName() string { return "courses" }

func newCourseRecord(c model.Course) courseRecord {
	return courseRecord{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		InstructorName: c.InstructorName,
		Category:       c.Category,
		Level:          string(c.Level),
		Published:      c.Published,
		Data:           c.Clone(),
		CreatedAt:      c.CreatedAt,
	}
}

type cartRecord struct {
	UserID    string             `gorm:"primaryKey"`
	Snapshot  model.CartSnapshot `gorm:"serializer:json"`
	UpdatedAt time.Time
}

func (cartRecord) TableName() string { return "carts" }

type orderRecord struct {
	ID            string           `gorm:"primaryKey"`
	UserID        string           `gorm:"index;not null"`
	Items         []model.CartItem `gorm:"serializer:json"`
	TotalCents    int64            `gorm:"not null"`
	Currency      string           `gorm:"not null"`
	Status        string           `gorm:"index;not null"`
	FailureReason string
	TransactionID string
	CreatedAt     time.Time
	PaidAt        *time.Time
	FulfilledAt   *time.Time
}

func (orderRecord) TableName() string { return "orders" }

func newOrderRecord(o model.Order) orderRecord {
	return orderRecord{
		ID:            o.ID,
		UserID:        o.UserID,
		Items:         model.CloneItems(o.Items),
		TotalCents:    o.Total.Round(2).Shift(2).IntPart(),
		Currency:      o.Currency,
		Status:        string(o.Status),
		FailureReason: o.FailureReason,
		TransactionID: o.TransactionID,
		CreatedAt:     o.CreatedAt,
		PaidAt:        o.PaidAt,
		FulfilledAt:   o.FulfilledAt,
	}
}

func (r orderRecord) toModel() model.Order {
	return model.Order{
		ID:            r.ID,
		UserID:        r.UserID,
		Items:         r.Items,
		Total:         decimal.New(r.TotalCents, -2),
		Currency:      r.Currency,
		Status:        model.OrderStatus(r.Status),
		FailureReason: r.FailureReason,
		TransactionID: r.TransactionID,
		CreatedAt:     r.CreatedAt,
		PaidAt:        r.PaidAt,
		FulfilledAt:   r.FulfilledAt,
	}
}

type enrollmentRecord struct {
	ID                  string       `gorm:"primaryKey"`
	UserID              string       `gorm:"uniqueIndex:idx_enrollments_user_course;not null"`
	CourseID            string       `gorm:"uniqueIndex:idx_enrollments_user_course;not null"`
	Course              model.Course `gorm:"serializer:json"`
	Progress            int
	EnrolledAt          time.Time
	LastWatchedLessonID string
}

func (enrollmentRecord) TableName() string { return "enrollments" }

func newEnrollmentRecord(e model.Enrollment) enrollmentRecord {
	return enrollmentRecord{
		ID:                  e.ID,
		UserID:              e.UserID,
		CourseID:            e.CourseID,
		Course:              e.Course.Clone(),
		Progress:            e.Progress,
		EnrolledAt:          e.EnrolledAt,
		LastWatchedLessonID: e.LastWatchedLessonID,
	}
}

func (r enrollmentRecord) toModel() model.Enrollment {
	return model.Enrollment{
		ID:                  r.ID,
		UserID:              r.UserID,
		CourseID:            r.CourseID,
		Course:              r.Course,
		Progress:            r.Progress,
		EnrolledAt:          r.EnrolledAt,
		LastWatchedLessonID: r.LastWatchedLessonID,
	}
}

package dto

import (
	"time"

	"github.com/polkiloo/coursemart/internal/domain/model"
)

// EnrollmentResponse describes access to a purchased course.
type EnrollmentResponse struct {
	ID                  string       `json:"id"`
	UserID              string       `json:"userId"`
	CourseID            string       `json:"courseId"`
	Course              model.Course `json:"course"`
	Progress            int          `json:"progress"`
	EnrolledAt          time.Time    `json:"enrolledAt"`
	LastWatchedLessonID string       `json:"lastWatchedLessonId,omitempty"`
}

// EnrollmentStatusResponse answers whether the user owns a course.
type EnrollmentStatusResponse struct {
	CourseID string `json:"courseId"`
	Enrolled bool   `json:"enrolled"`
}

// HealthResponse reports service status.
type HealthResponse struct {
	Status string `json:"status"`
}

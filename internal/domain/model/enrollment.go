package model

import "time"

// Enrollment grants a user access to a purchased course.
type Enrollment struct {
	ID                  string
	UserID              string
	CourseID            string
	Course              Course
	Progress            int
	EnrolledAt          time.Time
	LastWatchedLessonID string
}

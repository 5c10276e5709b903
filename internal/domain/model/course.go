package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Level describes course difficulty.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Lesson is a single video unit of a course.
type Lesson struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	VideoURL string `json:"videoUrl"`
	Duration int    `json:"duration"`
	Order    int    `json:"order"`
}

// Course is a catalog entry. Price is never negative.
type Course struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	Thumbnail      string          `json:"thumbnail"`
	InstructorID   string          `json:"instructorId"`
	InstructorName string          `json:"instructorName"`
	Category       string          `json:"category"`
	Level          Level           `json:"level"`
	Lessons        []Lesson        `json:"lessons"`
	Rating         float64         `json:"rating"`
	ReviewsCount   int             `json:"reviewsCount"`
	StudentsCount  int             `json:"studentsCount"`
	Duration       int             `json:"duration"`
	Published      bool            `json:"published"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Clone returns a deep copy suitable for snapshots.
func (c Course) Clone() Course {
	out := c
	if c.Lessons != nil {
		out.Lessons = make([]Lesson, len(c.Lessons))
		copy(out.Lessons, c.Lessons)
	}
	return out
}

// CourseFilter narrows catalog listings. Zero value matches every published course.
type CourseFilter struct {
	Query    string
	Category string
	Level    Level
}

// Matches reports whether course is published and satisfies every set field of f.
func (f CourseFilter) Matches(c Course) bool {
	if !c.Published {
		return false
	}
	if f.Category != "" && !strings.EqualFold(f.Category, c.Category) {
		return false
	}
	if f.Level != "" && !strings.EqualFold(string(f.Level), string(c.Level)) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strings.ToLower(c.Description), q) ||
		strings.Contains(strings.ToLower(c.InstructorName), q)
}

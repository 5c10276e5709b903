// Package seed loads the demo accounts and catalog used in development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/coursemart/internal/domain/errors"
	"github.com/polkiloo/coursemart/internal/domain/model"
	"github.com/polkiloo/coursemart/internal/domain/repository"
	"github.com/polkiloo/coursemart/internal/usecase"
)

// Demo credentials.
const (
	StudentEmail       = "student@example.com"
	StudentPassword    = "student123"
	InstructorEmail    = "instructor@example.com"
	InstructorPassword = "instructor123"
)

type demoCourse struct {
	id          string
	title       string
	description string
	price       string
	category    string
	level       model.Level
	rating      float64
	reviews     int
	students    int
	hours       int
	thumbnail   string
}

var catalog = []demoCourse{
	{"course-1", "The Complete Web Development Bootcamp 2025", "HTML, CSS, JavaScript, Node and React from scratch.", "84.99", "Development", model.LevelBeginner, 4.8, 245000, 890000, 65, "/altumcode-dC6Pb2JdAqs-unsplash.jpg"},
	{"course-2", "Machine Learning A-Z: AI, Python & R", "Hands-on regression, classification and clustering.", "79.99", "Data Science", model.LevelIntermediate, 4.7, 178000, 650000, 44, "/brooke-cagle-g1Kr4Ozfoac-unsplash.jpg"},
	{"course-3", "iOS & Swift - The Complete iOS App Development", "Build real iOS apps with Swift and SwiftUI.", "89.99", "Development", model.LevelBeginner, 4.8, 89000, 320000, 60, "/boliviainteligente-aP61AhDoAm0-unsplash.jpg"},
	{"course-4", "Digital Marketing Masterclass - 23 Courses in 1", "SEO, social media, email and paid ads in one course.", "74.99", "Marketing", model.LevelBeginner, 4.6, 45000, 180000, 38, "/alexander-shatov-mr4JG4SYOF8-unsplash.jpg"},
	{"course-5", "Complete UI/UX Design: From Figma to Reality", "Design systems, prototyping and usability testing.", "69.99", "Design", model.LevelIntermediate, 4.9, 67000, 240000, 42, "/daniel-korpai-mxPiMiz7KCo-unsplash.jpg"},
	{"course-6", "AWS Certified Solutions Architect 2025", "Prepare for the associate exam with real architectures.", "94.99", "IT & Software", model.LevelAdvanced, 4.8, 98000, 380000, 48, "/campaign-creators-gMsnXqILjp4-unsplash.jpg"},
}

// Seeder registers demo users and upserts the demo catalog. Running it twice is harmless.
type Seeder struct {
	auth    *usecase.AuthUseCase
	users   repository.UserRepository
	courses repository.CourseRepository
	logger  *slog.Logger
	now     func() time.Time
}

// NewSeeder constructs Seeder.
func NewSeeder(auth *usecase.AuthUseCase, users repository.UserRepository, courses repository.CourseRepository, logger *slog.Logger) *Seeder {
	return &Seeder{auth: auth, users: users, courses: courses, logger: logger, now: time.Now}
}

// Run seeds users first so courses can reference the instructor.
func (s *Seeder) Run(ctx context.Context) error {
	if _, err := s.ensureUser(ctx, "John Student", StudentEmail, StudentPassword, model.RoleStudent); err != nil {
		return err
	}
	instructor, err := s.ensureUser(ctx, "Jane Instructor", InstructorEmail, InstructorPassword, model.RoleInstructor)
	if err != nil {
		return err
	}

	createdAt := s.now().UTC()
	for i, dc := range catalog {
		course := dc.build(instructor, createdAt.Add(time.Duration(i)*time.Second))
		if err := s.courses.Upsert(ctx, course); err != nil {
			return fmt.Errorf("seed course %s: %w", dc.id, err)
		}
	}

	s.logger.Info("demo data seeded",
		slog.Int("courses", len(catalog)),
		slog.String("instructor_id", instructor.ID),
	)
	return nil
}

func (s *Seeder) ensureUser(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	usr, _, err := s.auth.Register(ctx, usecase.RegisterInput{Name: name, Email: email, Password: password, Role: role})
	if err == nil {
		return usr, nil
	}
	if !errors.Is(err, domainErrors.ErrAlreadyExists) {
		return nil, fmt.Errorf("seed user %s: %w", email, err)
	}
	usr, err = s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("seed user %s: %w", email, err)
	}
	return usr, nil
}

func (dc demoCourse) build(instructor *model.User, createdAt time.Time) model.Course {
	lessons := make([]model.Lesson, 3)
	for i := range lessons {
		lessons[i] = model.Lesson{
			ID:       fmt.Sprintf("%s-lesson-%d", dc.id, i+1),
			Title:    fmt.Sprintf("Lesson %d", i+1),
			VideoURL: fmt.Sprintf("https://videos.example.com/%s/%d.mp4", dc.id, i+1),
			Duration: 20 * 60,
			Order:    i + 1,
		}
	}
	return model.Course{
		ID:             dc.id,
		Title:          dc.title,
		Description:    dc.description,
		Price:          decimal.RequireFromString(dc.price),
		Thumbnail:      dc.thumbnail,
		InstructorID:   instructor.ID,
		InstructorName: instructor.Name,
		Category:       dc.category,
		Level:          dc.level,
		Lessons:        lessons,
		Rating:         dc.rating,
		ReviewsCount:   dc.reviews,
		StudentsCount:  dc.students,
		Duration:       dc.hours * 60,
		Published:      true,
		CreatedAt:      createdAt,
	}
}

// Package sqlite implements the repositories on an embedded SQLite file through gorm.
package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/polkiloo/coursemart/internal/domain/repository"
)

// Storage acts as repository facade backed by a gorm SQLite database.
type Storage struct {
	db     *gorm.DB
	logger *slog.Logger
}

var _ repository.Factory = (*Storage)(nil)

// New opens the database file at path and migrates the schema.
func New(path string, logger *slog.Logger) (*Storage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(
			slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single writer avoids SQLITE_BUSY under concurrent checkouts.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&userRecord{},
		&courseRecord{},
		&cartRecord{},
		&orderRecord{},
		&enrollmentRecord{},
	); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Storage{db: db, logger: logger}, nil
}

// Users returns repository for users.
func (s *Storage) Users() repository.UserRepository { return &userRepository{db: s.db} }

// Courses returns repository for the catalog.
func (s *Storage) Courses() repository.CourseRepository { return &courseRepository{db: s.db} }

// Carts returns repository for cart snapshots.
func (s *Storage) Carts() repository.CartRepository { return &cartRepository{db: s.db} }

// Orders returns repository for orders.
func (s *Storage) Orders() repository.OrderRepository { return &orderRepository{db: s.db} }

// Enrollments returns repository for enrollments.
func (s *Storage) Enrollments() repository.EnrollmentRepository {
	return &enrollmentRepository{db: s.db}
}

// HealthCheck pings the underlying connection.
func (s *Storage) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Close releases the database file.
func (s *Storage) Close() {
	sqlDB, err := s.db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		s.logger.Error("failed to close sqlite", slog.String("error", err.Error()))
	}
}

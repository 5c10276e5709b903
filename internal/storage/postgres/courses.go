package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/coursemart/internal/domain/errors"
	"github.com/polkiloo/coursemart/internal/domain/model"
)

type courseRepository struct {
	storage *Storage
}

// List filters in SQL with the same semantics as model.CourseFilter.Matches.
func (r *courseRepository) List(ctx context.Context, filter model.CourseFilter) ([]model.Course, error) {
	const query = `SELECT data FROM courses
                   WHERE published
                     AND ($1 = '' OR lower(category) = lower($1))
                     AND ($2 = '' OR lower(level) = lower($2))
                     AND ($3 = '' OR strpos(lower(title), $3) > 0
                                  OR strpos(lower(description), $3) > 0
                                  OR strpos(lower(instructor_name), $3) > 0)
                   ORDER BY created_at, id`
	q := normalizeQuery(filter.Query)
	rows, err := r.storage.pool.Query(ctx, query, filter.Category, string(filter.Level), q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Course
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var c model.Course
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode course: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*model.Course, error) {
	const query = `SELECT data FROM courses WHERE id=$1`
	var raw []byte
	if err := r.storage.pool.QueryRow(ctx, query, id).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	var c model.Course
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode course: %w", err)
	}
	return &c, nil
}

func (r *courseRepository) Upsert(ctx context.Context, course model.Course) error {
	const query = `INSERT INTO courses (id, title, description, instructor_name, category, level, published, data, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   ON CONFLICT (id) DO UPDATE SET
                       title = EXCLUDED.title,
                       description = EXCLUDED.description,
                       instructor_name = EXCLUDED.instructor_name,
                       category = EXCLUDED.category,
                       level = EXCLUDED.level,
                       published = EXCLUDED.published,
                       data = EXCLUDED.data`
	raw, err := json.Marshal(course)
	if err != nil {
		return fmt.Errorf("encode course: %w", err)
	}
	_, err = r.storage.pool.Exec(ctx, query,
		course.ID, course.Title, course.Description, course.InstructorName,
		course.Category, string(course.Level), course.Published, raw, course.CreatedAt,
	)
	return err
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

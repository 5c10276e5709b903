package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/coursemart/internal/domain/model"
)

type enrollmentRepository struct {
	storage *Storage
}

const enrollmentColumns = `id, user_id, course_id, course, progress, enrolled_at, last_watched_lesson_id`

func (r *enrollmentRepository) Create(ctx context.Context, enrollment model.Enrollment) (*model.Enrollment, bool, error) {
	const query = `INSERT INTO enrollments (` + enrollmentColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   ON CONFLICT (user_id, course_id) DO NOTHING
                   RETURNING id`
	raw, err := json.Marshal(enrollment.Course)
	if err != nil {
		return nil, false, fmt.Errorf("encode course: %w", err)
	}

	var id string
	err = r.storage.pool.QueryRow(ctx, query,
		enrollment.ID, enrollment.UserID, enrollment.CourseID, raw,
		enrollment.Progress, enrollment.EnrolledAt, enrollment.LastWatchedLessonID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.get(ctx, enrollment.UserID, enrollment.CourseID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return &enrollment, true, nil
}

func (r *enrollmentRepository) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM enrollments WHERE user_id=$1 AND course_id=$2)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *enrollmentRepository) ListByUser(ctx context.Context, userID string) ([]model.Enrollment, error) {
	const query = `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE user_id=$1 ORDER BY enrolled_at, id`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Enrollment{}
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *enrollmentRepository) get(ctx context.Context, userID, courseID string) (*model.Enrollment, error) {
	const query = `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE user_id=$1 AND course_id=$2`
	e, err := scanEnrollment(r.storage.pool.QueryRow(ctx, query, userID, courseID))
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanEnrollment(row pgx.Row) (model.Enrollment, error) {
	var (
		e   model.Enrollment
		raw []byte
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.CourseID, &raw, &e.Progress, &e.EnrolledAt, &e.LastWatchedLessonID); err != nil {
		return model.Enrollment{}, err
	}
	if err := json.Unmarshal(raw, &e.Course); err != nil {
		return model.Enrollment{}, fmt.Errorf("decode course: %w", err)
	}
	return e, nil
}

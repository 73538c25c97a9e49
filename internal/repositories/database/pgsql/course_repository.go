package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/julianojcs/ibs/internal/core/domain"
	portsrepo "github.com/julianojcs/ibs/internal/core/ports/repositories"
	"github.com/julianojcs/ibs/internal/models"
)

type PgxCourseRepository struct {
	db *pgxpool.Pool
}

func NewCourseRepository(db *pgxpool.Pool) portsrepo.CourseRepository {
	return &PgxCourseRepository{db: db}
}

var _ portsrepo.CourseRepository = (*PgxCourseRepository)(nil)

func (r *PgxCourseRepository) FindActiveCourses(ctx context.Context) ([]domain.Course, error) {
	query := `
        SELECT course_id, name, code, description, start_date, end_date,
               location, is_active, created_at, updated_at
        FROM courses
        WHERE is_active = TRUE
        ORDER BY start_date DESC;
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []domain.Course{}
	for rows.Next() {
		var m models.Course
		err := rows.Scan(
			&m.CourseID, &m.Name, &m.Code, &m.Description, &m.StartDate, &m.EndDate,
			&m.Location, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, domain.Course{
			CourseID:    m.CourseID,
			Name:        m.Name,
			Code:        m.Code,
			Description: m.Description.String,
			StartDate:   m.StartDate,
			EndDate:     m.EndDate,
			Location:    m.Location,
			IsActive:    m.IsActive,
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", rows.Err())
	}
	return courses, nil
}

// UpsertCourse inserts or refreshes a catalog entry keyed by its code. Used
// by the seed command only.
func (r *PgxCourseRepository) UpsertCourse(ctx context.Context, course domain.Course) error {
	query := `
        INSERT INTO courses (course_id, name, code, description, start_date, end_date,
                             location, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (code) DO UPDATE
        SET name = EXCLUDED.name,
            description = EXCLUDED.description,
            start_date = EXCLUDED.start_date,
            end_date = EXCLUDED.end_date,
            location = EXCLUDED.location,
            is_active = EXCLUDED.is_active,
            updated_at = EXCLUDED.updated_at;
    `
	_, err := r.db.Exec(ctx, query,
		course.CourseID, course.Name, course.Code, nullString(course.Description),
		course.StartDate, course.EndDate, course.Location, course.IsActive,
		course.CreatedAt, course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert course %s: %w", course.Code, err)
	}
	return nil
}

package models

import (
	"database/sql"
	"time"
)

// Course is the courses table row.
type Course struct {
	CourseID    string         `db:"course_id"`
	Name        string         `db:"name"`
	Code        string         `db:"code"`
	Description sql.NullString `db:"description"`
	StartDate   time.Time      `db:"start_date"`
	EndDate     time.Time      `db:"end_date"`
	Location    string         `db:"location"`
	IsActive    bool           `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

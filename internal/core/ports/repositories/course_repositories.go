package repositories

import (
	"context"

	"github.com/julianojcs/ibs/internal/core/domain"
)

// CourseRepository reads the course catalog. Writes happen only through the
// seed process.
type CourseRepository interface {
	FindActiveCourses(ctx context.Context) ([]domain.Course, error)
	UpsertCourse(ctx context.Context, course domain.Course) error
}

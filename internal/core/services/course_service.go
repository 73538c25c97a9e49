package services

import (
	"context"
	"fmt"

	"github.com/julianojcs/ibs/internal/core/domain"
	portsrepo "github.com/julianojcs/ibs/internal/core/ports/repositories"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
)

type courseService struct {
	BaseService
	courseRepo portsrepo.CourseRepository
}

// NewCourseService creates the course catalog service.
func NewCourseService(courseRepo portsrepo.CourseRepository) portssvc.CourseSvcFacade {
	return &courseService{courseRepo: courseRepo}
}

func (s *courseService) ListCourses(ctx context.Context) ([]domain.Course, error) {
	courses, err := s.courseRepo.FindActiveCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

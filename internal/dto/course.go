package dto

import (
	"time"

	"github.com/julianojcs/ibs/internal/core/domain"
)

// CourseResponse is the public shape of a course catalog entry.
type CourseResponse struct {
	CourseID  string    `json:"courseID"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// ToCourseResponses converts the active catalog.
func ToCourseResponses(courses []domain.Course) []CourseResponse {
	out := make([]CourseResponse, len(courses))
	for i, c := range courses {
		out[i] = CourseResponse{
			CourseID:  c.CourseID,
			Name:      c.Name,
			Code:      c.Code,
			StartDate: c.StartDate,
			EndDate:   c.EndDate,
		}
	}
	return out
}

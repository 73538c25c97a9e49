package domain

import "time"

// Course is a catalog entry for a cohort. Courses are created by the seed
// process and are read-only from the application's perspective.
type Course struct {
	CourseID    string    `json:"courseID"`
	Name        string    `json:"name"`
	Code        string    `json:"code"` // unique
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Location    string    `json:"location"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

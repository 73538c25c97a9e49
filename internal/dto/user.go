package dto

import (
	"time"

	"github.com/julianojcs/ibs/internal/core/domain"
	"github.com/julianojcs/ibs/internal/utils/pagination"
)

// UserResponse is the public shape of a user record. Password hashes and
// pending tokens never leave the service layer.
type UserResponse struct {
	UserID           string    `json:"userID"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Avatar           string    `json:"avatar,omitempty"`
	Role             string    `json:"role"`
	EmailVerified    bool      `json:"emailVerified"`
	CourseName       string    `json:"courseName,omitempty"`
	City             string    `json:"city,omitempty"`
	Country          string    `json:"country,omitempty"`
	WhatsApp         string    `json:"whatsapp,omitempty"`
	LinkedIn         string    `json:"linkedin,omitempty"`
	Instagram        string    `json:"instagram,omitempty"`
	GitHub           string    `json:"github,omitempty"`
	Twitter          string    `json:"twitter,omitempty"`
	Bio              string    `json:"bio,omitempty"`
	Company          string    `json:"company,omitempty"`
	IsActive         bool      `json:"isActive"`
	ProfileCompleted bool      `json:"profileCompleted"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:           u.UserID,
		Email:            u.Email,
		Name:             u.Name,
		Avatar:           u.Avatar,
		Role:             string(u.Role),
		EmailVerified:    u.EmailVerified,
		CourseName:       u.CourseName,
		City:             u.City,
		Country:          u.Country,
		WhatsApp:         u.WhatsApp,
		LinkedIn:         u.LinkedIn,
		Instagram:        u.Instagram,
		GitHub:           u.GitHub,
		Twitter:          u.Twitter,
		Bio:              u.Bio,
		Company:          u.Company,
		IsActive:         u.IsActive,
		ProfileCompleted: u.ProfileCompleted,
		CreatedAt:        u.CreatedAt,
	}
}

// UpdateUserRequest is the body of PUT /api/users/:id. Pointers separate
// omitted fields from zero values.
type UpdateUserRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=2,max=100"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Role       *string `json:"role"`
	CourseName *string `json:"courseName"`
	City       *string `json:"city"`
	Country    *string `json:"country"`
	WhatsApp   *string `json:"whatsapp"`
	LinkedIn   *string `json:"linkedin" binding:"omitempty,url"`
	Instagram  *string `json:"instagram"`
	GitHub     *string `json:"github" binding:"omitempty,url"`
	Twitter    *string `json:"twitter"`
	Bio        *string `json:"bio" binding:"omitempty,max=500"`
	Company    *string `json:"company"`
}

// ListUsersParams are the query parameters of GET /api/users.
type ListUsersParams struct {
	Search     string `form:"search"`
	CourseName string `form:"courseName"`
	Country    string `form:"country"`
	Role       string `form:"role"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=12"`
}

// ListUsersResponse wraps a directory page.
type ListUsersResponse struct {
	Users      []UserResponse  `json:"users"`
	Pagination pagination.Meta `json:"pagination"`
}

// ToListUsersResponse converts a page of domain users.
func ToListUsersResponse(users []domain.User, meta pagination.Meta) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: userResponses, Pagination: meta}
}

// UpdateUserResponse returns the stored record plus a refreshed session
// artifact so the client can swap its (now stale) denormalized claims.
type UpdateUserResponse struct {
	User    UserResponse     `json:"user"`
	Session *SessionResponse `json:"session,omitempty"`
	Message string           `json:"message"`
}

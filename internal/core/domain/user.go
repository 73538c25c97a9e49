package domain

import "time"

// UserRole enumerates the membership roles of the network.
type UserRole string

const (
	RoleStudent     UserRole = "student"
	RoleTeacher     UserRole = "teacher"
	RoleAdvisor     UserRole = "advisor"
	RoleCoordinator UserRole = "coordinator"
	RoleGuest       UserRole = "guest"
)

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdvisor, RoleCoordinator, RoleGuest:
		return true
	}
	return false
}

// User is the identity and profile record of a classmate.
//
// An account always has a password hash, a Google ID, or both. Verification
// and reset tokens are write-once per cycle and cleared on successful use.
type User struct {
	UserID       string `json:"userID"`
	Email        string `json:"email"` // stored lowercase, globally unique
	PasswordHash string `json:"-"`     // empty for Google-only accounts

	EmailVerified            bool       `json:"emailVerified"`
	VerificationToken        string     `json:"-"`
	VerificationTokenExpires *time.Time `json:"-"`
	ResetToken               string     `json:"-"`
	ResetTokenExpires        *time.Time `json:"-"`

	Name       string   `json:"name"`
	Avatar     string   `json:"avatar,omitempty"`
	Role       UserRole `json:"role"`
	CourseName string   `json:"courseName,omitempty"`
	City       string   `json:"city,omitempty"`
	Country    string   `json:"country,omitempty"`

	WhatsApp  string `json:"whatsapp,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Company   string `json:"company,omitempty"`

	GoogleID         string `json:"-"` // external provider subject id, unique when set
	IsActive         bool   `json:"isActive"`
	ProfileCompleted bool   `json:"profileCompleted"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasPassword reports whether the account can authenticate with credentials.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// UserSummary is the denormalized uploader/tagged-user shape embedded in
// photo reads.
type UserSummary struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

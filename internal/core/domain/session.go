package domain

import "time"

// SessionClaims is the ephemeral identity bundle carried by a signed session
// artifact. Profile fields are denormalized into the session so page renders
// don't need a store round-trip; they go stale until the next explicit
// refresh.
type SessionClaims struct {
	UserID        string   `json:"userID"`
	Role          UserRole `json:"role"`
	EmailVerified bool     `json:"emailVerified"`

	Email      string `json:"email"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar,omitempty"`
	CourseName string `json:"courseName,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
	WhatsApp   string `json:"whatsapp,omitempty"`
	LinkedIn   string `json:"linkedin,omitempty"`
	Instagram  string `json:"instagram,omitempty"`
	GitHub     string `json:"github,omitempty"`
	Twitter    string `json:"twitter,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Company    string `json:"company,omitempty"`

	ExpiresAt time.Time `json:"expiresAt"`
}

// IsCoordinator reports whether the session belongs to the elevated role.
func (c *SessionClaims) IsCoordinator() bool {
	return c.Role == RoleCoordinator
}

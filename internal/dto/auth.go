package dto

import "time"

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=100"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,strongpw"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	CourseName      string `json:"courseName" binding:"required"`
	City            string `json:"city" binding:"required"`
	Country         string `json:"country" binding:"required"`
	Company         string `json:"company"`
	Bio             string `json:"bio" binding:"max=500"`
	Twitter         string `json:"twitter"`
}

// RegisterResponse acknowledges account creation; verification is pending.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the minted session artifact.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// CheckCredentialsRequest is the body of POST /api/auth/check-credentials.
type CheckCredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CheckCredentialsResponse reports the detailed credential status so the
// login form can distinguish unverified-email from bad credentials.
type CheckCredentialsResponse struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
	Email   string `json:"email,omitempty"`
	Message string `json:"message"`
}

// VerifyEmailRequest is the body of POST /api/auth/verify-email.
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// ResendVerificationRequest is the body of POST /api/auth/resend-verification.
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPasswordRequest is the body of POST /api/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest is the body of POST /api/auth/reset-password.
type ResetPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required,strongpw"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// CompleteProfileRequest finishes account creation for a new Google
// identity. Course, city and country are mandatory before the account
// exists.
type CompleteProfileRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name" binding:"required,min=2,max=100"`
	GoogleID   string `json:"googleId" binding:"required"`
	Avatar     string `json:"avatar"`
	CourseName string `json:"courseName" binding:"required"`
	City       string `json:"city" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Role       string `json:"role"`
}

// GoogleExchangeRequest is the body of POST /api/auth/google/exchange-code.
type GoogleExchangeRequest struct {
	Code string `json:"code" binding:"required"`
}

// GoogleExchangeResponse either carries a minted session for a linked
// account, or signals that profile completion is required first.
type GoogleExchangeResponse struct {
	Token             string        `json:"token,omitempty"`
	ExpiresAt         *time.Time    `json:"expiresAt,omitempty"`
	User              *UserResponse `json:"user,omitempty"`
	PendingCompletion bool          `json:"pendingCompletion"`
	Email             string        `json:"email,omitempty"`
	Name              string        `json:"name,omitempty"`
	GoogleID          string        `json:"googleId,omitempty"`
	Avatar            string        `json:"avatar,omitempty"`
}

// SessionResponse carries a refreshed session artifact after a profile edit.
type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// MessageResponse is the generic acknowledgement envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

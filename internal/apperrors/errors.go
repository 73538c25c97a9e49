package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors returned by repositories and services. Handlers translate
// them into AppError responses at the request boundary.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation error")
	ErrDuplicate    = errors.New("resource already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)

// Stable machine-readable codes, kept compatible with the frontend error map.
const (
	CodeInvalidCredentials    = "AUTH_001"
	CodeEmailNotVerified      = "AUTH_002"
	CodeAccountDeactivated    = "AUTH_003"
	CodeUnauthorized          = "AUTH_005"
	CodeGoogleSignInRequired  = "AUTH_006"
	CodeValidationFailed      = "VAL_001"
	CodeEmailExists           = "VAL_002"
	CodeTokenInvalidOrExpired = "VAL_004"
	CodeInternal              = "ERR_001"
	CodeNotFound              = "ERR_003"
	CodeForbidden             = "ERR_004"
)

// AppError carries an HTTP status, a stable application code and a
// human-readable message across the request boundary.
type AppError struct {
	Code    int    `json:"-"`
	AppCode string `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with an explicit HTTP status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, AppCode: CodeInternal, Message: message, Err: err}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, AppCode: CodeValidationFailed, Message: message}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, AppCode: CodeValidationFailed, Message: message, Err: ErrValidation}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, AppCode: CodeUnauthorized, Message: message, Err: ErrUnauthorized}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, AppCode: CodeForbidden, Message: message, Err: ErrForbidden}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, AppCode: CodeNotFound, Message: message, Err: ErrNotFound}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, AppCode: CodeEmailExists, Message: message, Err: ErrDuplicate}
}

func NewTokenInvalidError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, AppCode: CodeTokenInvalidOrExpired, Message: message, Err: ErrValidation}
}

func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, AppCode: CodeInternal, Message: message, Err: ErrInternal}
}

func NewGatewayTimeoutError(message string) *AppError {
	return &AppError{Code: http.StatusGatewayTimeout, AppCode: CodeInternal, Message: message}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/julianojcs/ibs/internal/apperrors"
)

// respondError translates service errors into the JSON error envelope. Every
// handler funnels its failure path through here so clients always see a
// stable {code, error} shape.
func respondError(c *gin.Context, err error, fallbackMessage string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{"code": appErr.AppCode, "error": appErr.Message})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": apperrors.CodeNotFound, "error": fallbackMessage})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"code": apperrors.CodeEmailExists, "error": fallbackMessage})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeValidationFailed, "error": fallbackMessage})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"code": apperrors.CodeUnauthorized, "error": fallbackMessage})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"code": apperrors.CodeForbidden, "error": fallbackMessage})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"code": apperrors.CodeInternal, "error": fallbackMessage})
	}
}

// respondValidationError reports a request-binding failure.
func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":  apperrors.CodeValidationFailed,
		"error": "Invalid request format: " + err.Error(),
	})
}

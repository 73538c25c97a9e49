package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/julianojcs/ibs/internal/core/domain"
)

// contextKey is a private type so context values cannot collide with keys
// set by other packages.
type contextKey string

const (
	userIDKey    = contextKey("userID")
	claimsKey    = contextKey("sessionClaims")
	loggerCtxKey = contextKey("logger")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := v.(string); ok {
			return userID, true
		}
		return "", false
	}
	// check in the request context as well
	if v := c.Request.Context().Value(userIDKey); v != nil {
		if userID, ok := v.(string); ok {
			return userID, true
		}
	}
	return "", false
}

// GetClaimsFromContext retrieves the rehydrated session claims set by the
// session middleware.
func GetClaimsFromContext(c *gin.Context) (*domain.SessionClaims, bool) {
	if v, exists := c.Get(string(claimsKey)); exists {
		if claims, ok := v.(*domain.SessionClaims); ok {
			return claims, true
		}
	}
	return nil, false
}

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context. It returns the default logger when none was injected.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

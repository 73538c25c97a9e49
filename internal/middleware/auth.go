package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/julianojcs/ibs/internal/apperrors"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
)

// SessionAuthMiddleware creates a Gin middleware handler that rehydrates the
// session claims from the bearer token and stores them in the request
// context. Missing, malformed and expired tokens are all rejected with 401.
func SessionAuthMiddleware(sessions portssvc.SessionSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": apperrors.CodeUnauthorized, "error": "Authorization header required",
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": apperrors.CodeUnauthorized, "error": "Authorization header format must be Bearer {token}",
			})
			return
		}

		claims, err := sessions.Rehydrate(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("Invalid session token", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": apperrors.CodeUnauthorized, "error": "Invalid or expired session",
			})
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", claims.UserID))

		// Mirror into both contexts: handlers read the Gin context, services
		// read the standard context.
		c.Set(string(userIDKey), claims.UserID)
		c.Set(string(claimsKey), claims)
		ctx := context.WithValue(c.Request.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

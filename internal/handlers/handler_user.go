package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/julianojcs/ibs/internal/apperrors"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
	"github.com/julianojcs/ibs/internal/dto"
	"github.com/julianojcs/ibs/internal/middleware"
)

// userHandler handles the member directory and profile edits.
type userHandler struct {
	userService    portssvc.UserSvcFacade
	sessionService portssvc.SessionSvcFacade
}

func newUserHandler(svc *portssvc.ServiceContainer) *userHandler {
	return &userHandler{
		userService:    svc.User,
		sessionService: svc.Session,
	}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, svc *portssvc.ServiceContainer) {
	h := newUserHandler(svc)

	users := rg.Group("/users")
	{
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)    // own profile or coordinator
		users.DELETE("/:id", h.deleteUser) // own profile or coordinator, deactivates
	}
}

// listUsers godoc
// @Summary List members
// @Description Paginated member directory with search and filters
// @Tags users
// @Produce json
// @Param search query string false "Free-text name search"
// @Param courseName query string false "Filter by course"
// @Param country query string false "Filter by country"
// @Param role query string false "Filter by role"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(12)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /api/users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidationError(c, err)
		return
	}

	users, meta, err := h.userService.ListUsers(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list users", slog.String("error", err.Error()))
		respondError(c, err, "Failed to list members")
		return
	}

	c.JSON(http.StatusOK, dto.ToListUsersResponse(users, meta))
}

// getUser godoc
// @Summary Get a member by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /api/users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update a member profile
// @Description Partial update; changing the email requires re-verification. The response carries a refreshed session token when the caller edited their own profile.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UpdateUserResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 409 {object} map[string]string "Email already in use"
// @Security BearerAuth
// @Router /api/users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	targetID := c.Param("id")

	claims, ok := middleware.GetClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": apperrors.CodeUnauthorized, "error": "Unauthorized"})
		return
	}
	if claims.UserID != targetID && !claims.IsCoordinator() {
		c.JSON(http.StatusForbidden, gin.H{"code": apperrors.CodeForbidden, "error": "You can only edit your own profile"})
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, emailChanged, err := h.userService.UpdateUserProfile(c.Request.Context(), targetID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			respondError(c, err, "An account with this email already exists")
			return
		}
		logger.Error("Failed to update user profile", slog.String("error", err.Error()))
		respondError(c, err, "Failed to update profile")
		return
	}

	resp := dto.UpdateUserResponse{
		User:    dto.ToUserResponse(user),
		Message: "Profile updated successfully",
	}
	if emailChanged {
		resp.Message = "Profile updated. Please verify your new email address."
	}

	// Self-edits get a re-signed session so the denormalized claims don't go
	// stale until expiry.
	if claims.UserID == targetID {
		fresh := claimsFromUser(user, claims.ExpiresAt)
		token, expiresAt, err := h.sessionService.Refresh(c.Request.Context(), fresh, dto.UpdateUserRequest{})
		if err != nil {
			logger.Error("Failed to refresh session after profile edit", slog.String("error", err.Error()))
		} else {
			resp.Session = &dto.SessionResponse{Token: token, ExpiresAt: expiresAt}
		}
	}

	c.JSON(http.StatusOK, resp)
}

// deleteUser godoc
// @Summary Deactivate a member account
// @Description Accounts are deactivated, never hard-deleted
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /api/users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	targetID := c.Param("id")

	claims, ok := middleware.GetClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": apperrors.CodeUnauthorized, "error": "Unauthorized"})
		return
	}
	if claims.UserID != targetID && !claims.IsCoordinator() {
		c.JSON(http.StatusForbidden, gin.H{"code": apperrors.CodeForbidden, "error": "You can only deactivate your own account"})
		return
	}

	if err := h.userService.DeactivateUser(c.Request.Context(), targetID); err != nil {
		logger.Error("Failed to deactivate user", slog.String("error", err.Error()))
		respondError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Account deactivated"})
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/julianojcs/ibs/internal/apperrors"
	"github.com/julianojcs/ibs/internal/core/domain"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
	"github.com/julianojcs/ibs/internal/dto"
	"github.com/julianojcs/ibs/internal/middleware"
)

// authHandler handles registration, login and the opaque token flows.
type authHandler struct {
	authService    portssvc.AuthSvcFacade
	sessionService portssvc.SessionSvcFacade
	credentials    portssvc.AuthProvider
}

func newAuthHandler(svc *portssvc.ServiceContainer) *authHandler {
	return &authHandler{
		authService:    svc.Auth,
		sessionService: svc.Session,
		credentials:    svc.CredentialsProvider,
	}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(rg *gin.RouterGroup, svc *portssvc.ServiceContainer) {
	h := newAuthHandler(svc)

	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
	rg.POST("/check-credentials", h.checkCredentials)
	rg.POST("/verify-email", h.verifyEmail)
	rg.POST("/resend-verification", h.resendVerification)
	rg.POST("/forgot-password", h.forgotPassword)
	rg.POST("/reset-password", h.resetPassword)
	rg.POST("/complete-profile", h.completeProfile)
}

// registerSessionRoutes registers the authenticated session routes.
func registerSessionRoutes(rg *gin.RouterGroup, svc *portssvc.ServiceContainer) {
	h := newAuthHandler(svc)
	userHandler := newUserHandler(svc)

	rg.POST("/auth/session/refresh", func(c *gin.Context) {
		h.refreshSession(c, userHandler.userService)
	})
}

// register godoc
// @Summary Register a new account
// @Description Creates a credential account and sends a verification email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /api/auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			respondError(c, err, "An account with this email already exists")
			return
		}
		logger.Error("Failed to register user", slog.String("error", err.Error()))
		respondError(c, err, "Failed to register")
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "Registration successful. Please check your email to verify your account.",
		UserID:  user.UserID,
	})
}

// login godoc
// @Summary Log in with email and password
// @Description Verifies credentials and mints a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /api/auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := h.credentials.Authenticate(c.Request.Context(), portssvc.AuthRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err, "Invalid email or password")
		return
	}

	token, expiresAt, err := h.sessionService.Mint(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to mint session", slog.String("error", err.Error()))
		respondError(c, err, "Failed to create session")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	})
}

// checkCredentials godoc
// @Summary Check credentials without minting a session
// @Description Reports the detailed outcome so the login form can guide the user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.CheckCredentialsRequest true "Credentials"
// @Success 200 {object} dto.CheckCredentialsResponse
// @Router /api/auth/check-credentials [post]
func (h *authHandler) checkCredentials(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CheckCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	status, user, err := h.authService.CheckCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Error("Credential check failed", slog.String("error", err.Error()))
		respondError(c, err, "Failed to check credentials")
		return
	}

	resp := dto.CheckCredentialsResponse{Reason: string(status)}
	switch status {
	case portssvc.CredentialOK:
		resp.Success = true
		resp.Reason = ""
		resp.Email = user.Email
		resp.Message = "Credentials are valid"
	case portssvc.CredentialEmailNotVerified:
		resp.Message = "Please verify your email before logging in"
	case portssvc.CredentialAccountDeactivated:
		resp.Message = "This account has been deactivated"
	case portssvc.CredentialExternalAccount:
		resp.Message = "This account uses Google sign-in"
	default:
		resp.Message = "Invalid email or password"
	}

	c.JSON(http.StatusOK, resp)
}

// verifyEmail godoc
// @Summary Verify an email address
// @Description Consumes a single-use verification token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyEmailRequest true "Verification token"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} map[string]string "Invalid or expired token"
// @Router /api/auth/verify-email [post]
func (h *authHandler) verifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if _, err := h.authService.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Unknown and expired look the same on purpose.
			appErr := apperrors.NewTokenInvalidError("Verification link is invalid or has expired")
			c.JSON(appErr.Code, gin.H{"code": appErr.AppCode, "error": appErr.Message})
			return
		}
		respondError(c, err, "Failed to verify email")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Email verified successfully. You can now log in."})
}

// resendVerification godoc
// @Summary Resend the verification email
// @Description Always responds the same whether or not the account exists
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResendVerificationRequest true "Email address"
// @Success 200 {object} dto.MessageResponse
// @Router /api/auth/resend-verification [post]
func (h *authHandler) resendVerification(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.authService.ResendVerification(c.Request.Context(), req.Email); err != nil {
		logger.Error("Failed to resend verification", slog.String("error", err.Error()))
		respondError(c, err, "Failed to resend verification email")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "If an unverified account exists for this email, a new verification link has been sent.",
	})
}

// forgotPassword godoc
// @Summary Request a password reset
// @Description Always responds the same whether or not the account exists
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Email address"
// @Success 200 {object} dto.MessageResponse
// @Router /api/auth/forgot-password [post]
func (h *authHandler) forgotPassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		logger.Error("Failed to process forgot-password", slog.String("error", err.Error()))
		respondError(c, err, "Failed to process request")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "If an account exists for this email, a password reset link has been sent.",
	})
}

// resetPassword godoc
// @Summary Reset a password
// @Description Consumes a single-use reset token and stores the new password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} map[string]string "Invalid or expired token"
// @Router /api/auth/reset-password [post]
func (h *authHandler) resetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			appErr := apperrors.NewTokenInvalidError("Reset link is invalid or has expired")
			c.JSON(appErr.Code, gin.H{"code": appErr.AppCode, "error": appErr.Message})
			return
		}
		respondError(c, err, "Failed to reset password")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset successfully. You can now log in."})
}

// completeProfile godoc
// @Summary Complete a Google sign-up
// @Description Creates the local account for a new Google identity and mints a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.CompleteProfileRequest true "Profile details"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /api/auth/complete-profile [post]
func (h *authHandler) completeProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CompleteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := h.authService.CompleteProfile(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			respondError(c, err, "An account with this email already exists")
			return
		}
		logger.Error("Failed to complete profile", slog.String("error", err.Error()))
		respondError(c, err, "Failed to complete profile")
		return
	}

	token, expiresAt, err := h.sessionService.Mint(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to mint session after profile completion", slog.String("error", err.Error()))
		respondError(c, err, "Failed to create session")
		return
	}

	c.JSON(http.StatusCreated, dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	})
}

// refreshSession godoc
// @Summary Refresh the session claims
// @Description Re-signs the session with the current stored profile, keeping the original expiry
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /api/auth/session/refresh [post]
func (h *authHandler) refreshSession(c *gin.Context, users portssvc.UserSvcFacade) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	claims, ok := middleware.GetClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": apperrors.CodeUnauthorized, "error": "Unauthorized"})
		return
	}

	user, err := users.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err, "Account not found")
		return
	}

	// Rebuild the claims from storage but keep the original absolute expiry:
	// refreshing must never extend the session.
	fresh := claimsFromUser(user, claims.ExpiresAt)
	token, expiresAt, err := h.sessionService.Refresh(c.Request.Context(), fresh, dto.UpdateUserRequest{})
	if err != nil {
		logger.Error("Failed to refresh session", slog.String("error", err.Error()))
		respondError(c, err, "Failed to refresh session")
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{Token: token, ExpiresAt: expiresAt})
}

// claimsFromUser builds session claims straight from the stored record.
func claimsFromUser(u *domain.User, expiresAt time.Time) *domain.SessionClaims {
	return &domain.SessionClaims{
		UserID:        u.UserID,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		Email:         u.Email,
		Name:          u.Name,
		Avatar:        u.Avatar,
		CourseName:    u.CourseName,
		City:          u.City,
		Country:       u.Country,
		WhatsApp:      u.WhatsApp,
		LinkedIn:      u.LinkedIn,
		Instagram:     u.Instagram,
		GitHub:        u.GitHub,
		Twitter:       u.Twitter,
		Bio:           u.Bio,
		Company:       u.Company,
		ExpiresAt:     expiresAt,
	}
}

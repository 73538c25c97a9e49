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

const oauthStateCookie = "oauth_state"

// googleOAuthHandler handles the Google sign-in flow.
type googleOAuthHandler struct {
	oauthService   portssvc.GoogleOAuthSvcFacade
	sessionService portssvc.SessionSvcFacade
	googleProvider portssvc.AuthProvider
}

func newGoogleOAuthHandler(svc *portssvc.ServiceContainer) *googleOAuthHandler {
	return &googleOAuthHandler{
		oauthService:   svc.GoogleOAuth,
		sessionService: svc.Session,
		googleProvider: svc.GoogleProvider,
	}
}

// registerGoogleOAuthRoutes registers the public Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, svc *portssvc.ServiceContainer) {
	h := newGoogleOAuthHandler(svc)

	google := rg.Group("/google")
	{
		google.GET("/login", h.loginRedirect)
		google.POST("/exchange-code", h.exchangeCode)
	}
}

// loginRedirect godoc
// @Summary Start the Google sign-in flow
// @Description Sets the CSRF state cookie and redirects to Google's consent screen
// @Tags oauth
// @Success 307
// @Router /api/auth/google/login [get]
func (h *googleOAuthHandler) loginRedirect(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := h.oauthService.GenerateStateString(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		respondError(c, err, "Failed to start Google sign-in")
		return
	}

	// State round-trips through a short-lived cookie so the callback can
	// reject forged redirects.
	c.SetCookie(oauthStateCookie, state, 600, "/", "", true, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// exchangeCode godoc
// @Summary Exchange a Google authorization code for a session
// @Description Validates the Google identity; either mints a session for a linked account or signals that profile completion is required
// @Tags oauth
// @Accept json
// @Produce json
// @Param request body dto.GoogleExchangeRequest true "Authorization code"
// @Success 200 {object} dto.GoogleExchangeResponse
// @Failure 400 {object} map[string]string "Invalid authorization code"
// @Failure 401 {object} map[string]string "Google identity could not be verified"
// @Router /api/auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GoogleExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := h.googleProvider.Authenticate(c.Request.Context(), portssvc.AuthRequest{Code: req.Code})
	if err != nil {
		var pending *portssvc.PendingCompletionError
		if errors.As(err, &pending) {
			// New identity: the client must collect course, city and country
			// before the account exists.
			c.JSON(http.StatusOK, dto.GoogleExchangeResponse{
				PendingCompletion: true,
				Email:             pending.Info.Email,
				Name:              pending.Info.Name,
				GoogleID:          pending.Info.ID,
				Avatar:            pending.Info.Picture,
			})
			return
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			respondError(c, err, "Email already linked to another Google account")
			return
		}
		logger.Warn("Google authentication failed", slog.String("error", err.Error()))
		respondError(c, err, "Google sign-in failed")
		return
	}

	token, expiresAt, err := h.sessionService.Mint(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to mint session after Google sign-in", slog.String("error", err.Error()))
		respondError(c, err, "Failed to create session")
		return
	}

	userResp := dto.ToUserResponse(user)
	c.JSON(http.StatusOK, dto.GoogleExchangeResponse{
		Token:     token,
		ExpiresAt: &expiresAt,
		User:      &userResp,
	})
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/julianojcs/ibs/internal/apperrors"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
	"github.com/julianojcs/ibs/internal/dto"
	"github.com/julianojcs/ibs/internal/middleware"
)

// photoHandler handles the gallery endpoints.
type photoHandler struct {
	photoService portssvc.PhotoSvcFacade
}

func newPhotoHandler(svc *portssvc.ServiceContainer) *photoHandler {
	return &photoHandler{photoService: svc.Photo}
}

// registerPhotoRoutes registers all gallery routes.
func registerPhotoRoutes(rg *gin.RouterGroup, svc *portssvc.ServiceContainer) {
	h := newPhotoHandler(svc)

	photos := rg.Group("/photos")
	{
		photos.POST("", h.createPhoto)
		photos.GET("", h.listPhotos)
		photos.GET("/:id", h.getPhoto)
		photos.POST("/:id/like", h.toggleLike)
		photos.PUT("/:id/tags", h.updateTags)
		photos.DELETE("/:id", h.deletePhoto) // owner or coordinator
	}
}

// createPhoto godoc
// @Summary Add a photo to the gallery
// @Description Stores metadata for an image previously uploaded via /api/upload
// @Tags photos
// @Accept json
// @Produce json
// @Param request body dto.CreatePhotoRequest true "Photo details"
// @Success 201 {object} dto.CreatePhotoResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /api/photos [post]
func (h *photoHandler) createPhoto(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": apperrors.CodeUnauthorized, "error": "Unauthorized"})
		return
	}

	var req dto.CreatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	photo, err := h.photoService.CreatePhoto(c.Request.Context(), userID, req)
	if err != nil {
		logger.Error("Failed to create photo", slog.String("error", err.Error()))
		respondError(c, err, "Failed to add photo")
		return
	}

	c.JSON(http.StatusCreated, dto.CreatePhotoResponse{
		Photo:   dto.ToPhotoResponse(photo),
		Message: "Photo added to the gallery",
	})
}

// listPhotos godoc
// @Summary List gallery photos
// @Description Paginated gallery, newest first
// @Tags photos
// @Produce json
// @Param userId query string false "Only photos uploaded by this user"
// @Param search query string false "Free-text over title, description and location"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.ListPhotosResponse
// @Security BearerAuth
// @Router /api/photos [get]
func (h *photoHandler) listPhotos(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPhotosParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidationError(c, err)
		return
	}

	photos, meta, err := h.photoService.ListPhotos(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list photos", slog.String("error", err.Error()))
		respondError(c, err, "Failed to list photos")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPhotosResponse(photos, meta))
}

// getPhoto godoc
// @Summary Get a photo by ID
// @Tags photos
// @Produce json
// @Param id path string true "Photo ID"
// @Success 200 {object} dto.PhotoResponse
// @Failure 404 {object} map[string]string "Photo not found"
// @Security BearerAuth
// @Router /api/photos/{id} [get]
func (h *photoHandler) getPhoto(c *gin.Context) {
	photo, err := h.photoService.GetPhoto(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Photo not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToPhotoResponse(photo))
}

// toggleLike godoc
// @Summary Toggle a like on a photo
// @Description Adds the caller to the like set, or removes them if already present
// @Tags photos
// @Produce json
// @Param id path string true "Photo ID"
// @Success 200 {object} dto.LikeResponse
// @Failure 404 {object} map[string]string "Photo not found"
// @Security BearerAuth
// @Router /api/photos/{id}/like [post]
func (h *photoHandler) toggleLike(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": apperrors.CodeUnauthorized, "error": "Unauthorized"})
		return
	}

	photo, liked, err := h.photoService.ToggleLike(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		logger.Error("Failed to toggle like", slog.String("error", err.Error()))
		respondError(c, err, "Photo not found")
		return
	}

	message := "Photo liked"
	if !liked {
		message = "Like removed"
	}
	c.JSON(http.StatusOK, dto.LikeResponse{
		Photo:   dto.ToPhotoResponse(photo),
		Liked:   liked,
		Message: message,
	})
}

// updateTags godoc
// @Summary Replace the tagged users of a photo
// @Tags photos
// @Accept json
// @Produce json
// @Param id path string true "Photo ID"
// @Param request body dto.UpdateTagsRequest true "Tagged user IDs"
// @Success 200 {object} dto.PhotoResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Photo not found"
// @Security BearerAuth
// @Router /api/photos/{id}/tags [put]
func (h *photoHandler) updateTags(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	claims, ok := middleware.GetClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": apperrors.CodeUnauthorized, "error": "Unauthorized"})
		return
	}

	var req dto.UpdateTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	photo, err := h.photoService.UpdateTags(c.Request.Context(), c.Param("id"), claims, req.TaggedUserIDs)
	if err != nil {
		logger.Error("Failed to update tags", slog.String("error", err.Error()))
		respondError(c, err, "Failed to update tags")
		return
	}

	c.JSON(http.StatusOK, dto.ToPhotoResponse(photo))
}

// deletePhoto godoc
// @Summary Delete a photo
// @Description Removes the record and destroys the hosted asset. Owner or coordinator only.
// @Tags photos
// @Produce json
// @Param id path string true "Photo ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Photo not found"
// @Security BearerAuth
// @Router /api/photos/{id} [delete]
func (h *photoHandler) deletePhoto(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	claims, ok := middleware.GetClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": apperrors.CodeUnauthorized, "error": "Unauthorized"})
		return
	}

	if err := h.photoService.DeletePhoto(c.Request.Context(), c.Param("id"), claims); err != nil {
		logger.Error("Failed to delete photo", slog.String("error", err.Error()))
		respondError(c, err, "Failed to delete photo")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Photo deleted"})
}

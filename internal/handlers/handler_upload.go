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

const maxUploadBytes = 10 << 20 // 10 MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// uploadHandler pushes image files to the external host.
type uploadHandler struct {
	imageService portssvc.ImageStorageSvc
	userService  portssvc.UserSvcFacade
}

func newUploadHandler(svc *portssvc.ServiceContainer) *uploadHandler {
	return &uploadHandler{
		imageService: svc.Images,
		userService:  svc.User,
	}
}

func registerUploadRoutes(rg *gin.RouterGroup, svc *portssvc.ServiceContainer) {
	h := newUploadHandler(svc)
	rg.POST("/upload", h.upload)
}

// upload godoc
// @Summary Upload an image
// @Description Multipart upload. type=gallery (default) yields url/publicId for POST /api/photos; type=avatar replaces the caller's avatar in place.
// @Tags upload
// @Accept mpfd
// @Produce json
// @Param file formData file true "Image file (jpeg, png, webp or gif, max 10 MB)"
// @Param type formData string false "avatar or gallery" default(gallery)
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} map[string]string "Unsupported file"
// @Security BearerAuth
// @Router /api/upload [post]
func (h *uploadHandler) upload(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": apperrors.CodeUnauthorized, "error": "Unauthorized"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeValidationFailed, "error": "A file is required (max 10 MB)"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeValidationFailed, "error": "File exceeds the 10 MB limit"})
		return
	}
	if !allowedImageTypes[fileHeader.Header.Get("Content-Type")] {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeValidationFailed, "error": "Only jpeg, png, webp and gif images are accepted"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		respondError(c, err, "Failed to read upload")
		return
	}
	defer file.Close()

	uploadType := c.DefaultPostForm("type", "gallery")
	switch uploadType {
	case "avatar":
		result, err := h.imageService.UploadAvatar(c.Request.Context(), file, userID)
		if err != nil {
			logger.Error("Failed to upload avatar", slog.String("error", err.Error()))
			respondError(c, err, "Failed to upload image")
			return
		}
		if err := h.userService.UpdateAvatar(c.Request.Context(), userID, result.URL); err != nil {
			logger.Error("Failed to store avatar URL", slog.String("error", err.Error()))
			respondError(c, err, "Failed to update avatar")
			return
		}
		c.JSON(http.StatusOK, dto.UploadResponse{
			URL:      result.URL,
			PublicID: result.PublicID,
			Message:  "Avatar updated",
		})
	case "gallery":
		result, err := h.imageService.UploadGalleryImage(c.Request.Context(), file)
		if err != nil {
			logger.Error("Failed to upload gallery image", slog.String("error", err.Error()))
			respondError(c, err, "Failed to upload image")
			return
		}
		c.JSON(http.StatusOK, dto.UploadResponse{
			URL:          result.URL,
			PublicID:     result.PublicID,
			ThumbnailURL: result.ThumbnailURL,
			Message:      "Image uploaded",
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeValidationFailed, "error": "type must be avatar or gallery"})
	}
}

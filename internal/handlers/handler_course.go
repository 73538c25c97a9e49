package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
	"github.com/julianojcs/ibs/internal/dto"
	"github.com/julianojcs/ibs/internal/middleware"
)

type courseHandler struct {
	courseService portssvc.CourseSvcFacade
}

func newCourseHandler(svc *portssvc.ServiceContainer) *courseHandler {
	return &courseHandler{courseService: svc.Course}
}

func registerCourseRoutes(rg *gin.RouterGroup, svc *portssvc.ServiceContainer) {
	h := newCourseHandler(svc)
	rg.GET("/courses", h.listCourses)
}

// listCourses godoc
// @Summary List active courses
// @Tags courses
// @Produce json
// @Success 200 {array} dto.CourseResponse
// @Security BearerAuth
// @Router /api/courses [get]
func (h *courseHandler) listCourses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	courses, err := h.courseService.ListCourses(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list courses", slog.String("error", err.Error()))
		respondError(c, err, "Failed to list courses")
		return
	}

	c.JSON(http.StatusOK, dto.ToCourseResponses(courses))
}

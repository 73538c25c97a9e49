package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/julianojcs/ibs/cmd/docs"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
	"github.com/julianojcs/ibs/internal/middleware"
	"github.com/julianojcs/ibs/internal/platform/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	RegisterCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes
	auth := r.Group("/api/auth")
	registerAuthRoutes(auth, services)
	registerGoogleOAuthRoutes(auth, services)

	// Everything else requires a valid session
	setupAPIRoutes(r, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes configures the authenticated /api group and delegates to
// specific entity route registrations
func setupAPIRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	api := r.Group("/api", middleware.SessionAuthMiddleware(services.Session))

	registerSessionRoutes(api, services)
	registerUserRoutes(api, services)
	registerPhotoRoutes(api, services)
	registerCourseRoutes(api, services)
	registerUploadRoutes(api, services)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-directory-service/internal/adapter/gin/handler"
	"user-directory-service/internal/adapter/gin/middleware"
)

// SetupRouter configures and returns a Gin router with all routes and middleware.
func SetupRouter(
	directoryHandler *handler.DirectoryHandler,
	rateLimiter *middleware.RateLimiter,
	adminToken string,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(rateLimiter.Middleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "user-directory-service",
		})
	})

	auth := middleware.BearerAuth(adminToken, log)

	// Paginated, server-filtered admin listing
	admin := router.Group("/admin", auth)
	{
		users := admin.Group("/users-management")
		{
			users.GET("/", directoryHandler.ListUsers)
			users.GET("/:user_id", directoryHandler.GetUser)
		}
	}

	// Legacy full-roster dump for clients that filter locally
	router.POST("/users", auth, directoryHandler.Snapshot)

	return router
}

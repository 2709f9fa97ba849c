package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/clefworks/scorevault/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes (all authenticated)
	v1 := router.Group("/api/v1", middleware.Auth(authCfg))
	{
		// Score upload and lookup
		v1.POST("/scores", handler.UploadScore)
		v1.GET("/scores/:id", handler.GetScore)

		// Collection management
		v1.GET("/collection", handler.GetCollection)
		v1.POST("/collection/:score_id", handler.AddToCollection)
		v1.DELETE("/collection/:score_id", handler.RemoveFromCollection)

		// Recommendations
		v1.POST("/suggestions", handler.Suggest)
	}
}

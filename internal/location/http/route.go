package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *LocationHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/locations")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)    // List locations
		group.GET("/:id", h.Get) // Get location details
	}

	// === Admin Routes ===
	admin := group.Group("", adminMiddleware)
	{
		admin.POST("", h.Create)       // Create location
		admin.PATCH("/:id", h.Update)  // Update location
		admin.DELETE("/:id", h.Delete) // Delete location
	}
}

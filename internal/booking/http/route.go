package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes. viewerMiddleware resolves the admin flag
// used for ownership checks.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, viewerMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware, viewerMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}

	g.GET("/rooms/:id/availability", authMiddleware, h.Availability)
}

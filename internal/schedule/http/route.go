package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the day grid routes under /locations/:id.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, viewerMiddleware gin.HandlerFunc) {
	group := g.Group("/locations/:id", authMiddleware, viewerMiddleware)
	{
		group.GET("/grid", h.Grid)
		group.GET("/grid.html", h.GridHTML)
	}
}

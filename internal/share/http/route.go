package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers share routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/shares")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)    // List shares for an environment
		group.POST("", h.Create) // Record a posted booking message
	}
}

package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers environment routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/environments")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)                  // List environments of a resource type
		group.GET("/bookable", h.ListBookable) // List environments with open slots
		group.GET("/:id", h.Get)               // Get environment details
		group.POST("", h.Create)               // Create environment
		group.PATCH("/:id", h.Update)          // Update environment
		group.DELETE("/:id", h.Delete)         // Delete environment
	}
}

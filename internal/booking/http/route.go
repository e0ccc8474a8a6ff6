package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers availability and booking routes. They hang off
// the environment they apply to.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/environments/:id")

	group.Use(authMiddleware)
	{
		group.GET("/availability", h.Availability) // Current slot set with occupancy
		group.POST("/bookings", h.Book)            // Reserve a slot
		group.DELETE("/bookings", h.Cancel)        // Release a slot
	}
}

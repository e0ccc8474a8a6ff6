package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers workspace routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/workspaces")

	group.Use(authMiddleware)
	{
		group.POST("/install", h.Install) // Register or rename the workspace
		group.GET("/me", h.Me)            // Current workspace details
	}
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hazelmere/envbooker-backend/internal/auth"
	"github.com/hazelmere/envbooker-backend/internal/pkg/response"
	"github.com/hazelmere/envbooker-backend/internal/workspace"
)

type Handler struct {
	service workspace.Service
}

func NewHandler(service workspace.Service) *Handler {
	return &Handler{service: service}
}

// Install registers (or renames) the workspace the actor's team claim
// points at. Idempotent: reinstalls update the stored name.
func (h *Handler) Install(c *gin.Context) {
	var body InstallRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	teamID := auth.GetTeamID(c)
	if teamID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing team claim"})
		return
	}

	req := workspace.InstallRequest{
		TeamID: teamID,
		Name:   body.Name,
	}

	ws, err := h.service.Install(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(ws))
}

// Me returns the workspace the actor belongs to.
func (h *Handler) Me(c *gin.Context) {
	teamID := auth.GetTeamID(c)
	if teamID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing team claim"})
		return
	}

	ws, err := h.service.GetByTeamID(c.Request.Context(), teamID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(ws))
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hazelmere/envbooker-backend/internal/pkg/response"
	"github.com/hazelmere/envbooker-backend/internal/share"
)

type Handler struct {
	service share.Service
}

func NewHandler(service share.Service) *Handler {
	return &Handler{service: service}
}

// Create records that an environment's booking message was posted to a
// channel, so later occupancy changes can refresh the same message.
func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := share.CreateRequest{
		EnvironmentID: body.EnvironmentID,
		ChannelID:     body.ChannelID,
		MessageRef:    body.MessageRef,
	}

	s, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(s))
}

func (h *Handler) List(c *gin.Context) {
	var req ListSharesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	shares, err := h.service.ListByEnvironment(c.Request.Context(), req.EnvironmentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ShareResponse, len(shares))
	for i, s := range shares {
		items[i] = NewResponse(s)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hazelmere/envbooker-backend/internal/auth"
	"github.com/hazelmere/envbooker-backend/internal/booking"
	"github.com/hazelmere/envbooker-backend/internal/pkg/request"
	"github.com/hazelmere/envbooker-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// Availability renders the environment's current slot set annotated with
// occupancy, as seen from the requester's timezone.
func (h *Handler) Availability(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	slots, err := h.service.ListAvailability(c.Request.Context(), uri.ID, auth.GetTimezone(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SlotResponse, len(slots))
	for i, s := range slots {
		items[i] = NewSlotResponse(s)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Book(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body BookRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	b, err := h.service.Book(c.Request.Context(), uri.ID, body.SlotKey, userID, auth.GetTimezone(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body CancelRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	actorID := auth.GetUserID(c)

	holderID := body.HolderID
	if holderID == "" {
		holderID = actorID
	}

	if err := h.service.Cancel(c.Request.Context(), uri.ID, body.SlotKey, holderID, actorID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

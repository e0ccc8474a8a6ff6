package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hazelmere/envbooker-backend/internal/auth"
	"github.com/hazelmere/envbooker-backend/internal/pkg/request"
	"github.com/hazelmere/envbooker-backend/internal/pkg/response"
	"github.com/hazelmere/envbooker-backend/internal/resourcetype"
	"github.com/hazelmere/envbooker-backend/internal/workspace"
)

type Handler struct {
	service   resourcetype.Service
	wsService workspace.Service
}

func NewHandler(service resourcetype.Service, wsService workspace.Service) *Handler {
	return &Handler{
		service:   service,
		wsService: wsService,
	}
}

// resolveWorkspace maps the actor's team claim to the installed workspace
// record. Every resource type is scoped to the workspace it was created in.
func (h *Handler) resolveWorkspace(c *gin.Context) (*workspace.Workspace, bool) {
	teamID := auth.GetTeamID(c)
	if teamID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing team claim"})
		return nil, false
	}

	ws, err := h.wsService.GetByTeamID(c.Request.Context(), teamID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}

	return ws, true
}

// checkPermission checks if the user is an administrator of the type.
func (h *Handler) checkPermission(c *gin.Context, typeID string) bool {
	userID := auth.GetUserID(c)
	if userID == "" {
		return false
	}

	ok, err := h.service.IsAdministrator(c.Request.Context(), typeID, userID)
	if err != nil {
		return false
	}

	return ok
}

func (h *Handler) List(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	ws, ok := h.resolveWorkspace(c)
	if !ok {
		return
	}

	filter := resourcetype.Filter{
		OrganizationID: ws.ID,
		Page:           params.Page,
		PageSize:       params.PageSize,
	}

	types, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ResourceTypeResponse, len(types))
	for i, rt := range types {
		items[i] = NewResponse(rt)
	}

	resp := response.NewPageResponse(items, params.Page, params.PageSize, total)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ws, ok := h.resolveWorkspace(c)
	if !ok {
		return
	}

	req := resourcetype.CreateRequest{
		OrganizationID: ws.ID,
		Name:           body.Name,
		Description:    body.Description,
		Administrators: body.Administrators,
		CreatorID:      auth.GetUserID(c),
	}

	rt, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(rt))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	rt, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(rt))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if !h.checkPermission(c, uri.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only administrators can update resource types"})
		return
	}

	var body UpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := resourcetype.UpdateRequest{
		Name:           body.Name,
		Description:    body.Description,
		Administrators: body.Administrators,
	}

	rt, err := h.service.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(rt))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if !h.checkPermission(c, req.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only administrators can delete resource types"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

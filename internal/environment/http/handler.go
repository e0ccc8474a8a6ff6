package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hazelmere/envbooker-backend/internal/auth"
	"github.com/hazelmere/envbooker-backend/internal/environment"
	"github.com/hazelmere/envbooker-backend/internal/pkg/request"
	"github.com/hazelmere/envbooker-backend/internal/pkg/response"
	"github.com/hazelmere/envbooker-backend/internal/resourcetype"
	"github.com/hazelmere/envbooker-backend/internal/schedule"
)

type Handler struct {
	service   environment.Service
	rtService resourcetype.Service
}

func NewHandler(service environment.Service, rtService resourcetype.Service) *Handler {
	return &Handler{
		service:   service,
		rtService: rtService,
	}
}

// checkPermission checks if the user administers the owning resource type.
func (h *Handler) checkPermission(c *gin.Context, resourceTypeID string) bool {
	userID := auth.GetUserID(c)
	if userID == "" {
		return false
	}

	ok, err := h.rtService.IsAdministrator(c.Request.Context(), resourceTypeID, userID)
	if err != nil {
		return false
	}

	return ok
}

// configError renders invalid recurrence settings as a field-tagged 400 so
// the gateway can redisplay the configuration form with per-field messages.
func configError(c *gin.Context, cfgErr *environment.ConfigError) {
	fields := make(map[string]string, len(cfgErr.Fields))
	for _, f := range cfgErr.Fields {
		fields[f.Field] = f.Reason
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid configuration", "fields": fields})
}

func (h *Handler) List(c *gin.Context) {
	var req ListEnvironmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := environment.Filter{
		ResourceTypeID: req.ResourceTypeID,
		Page:           req.Page,
		PageSize:       req.PageSize,
	}

	envs, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]EnvironmentResponse, len(envs))
	for i, e := range envs {
		items[i] = NewResponse(e)
	}

	resp := response.NewPageResponse(items, req.Page, req.PageSize, total)
	c.JSON(http.StatusOK, resp)
}

// ListBookable trims the list down to environments that still have at least
// one open slot as seen from the requester's timezone. This backs the home
// view, where expired one-offs are hidden rather than shown as dead entries.
func (h *Handler) ListBookable(c *gin.Context) {
	var req ListEnvironmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	loc, err := schedule.LoadLocation(auth.GetTimezone(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timezone"})
		return
	}

	envs, err := h.service.ListBookable(c.Request.Context(), req.ResourceTypeID, loc)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]EnvironmentResponse, len(envs))
	for i, e := range envs {
		items[i] = NewResponse(e)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if !h.checkPermission(c, body.ResourceTypeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only administrators can create environments"})
		return
	}

	req := environment.CreateRequest{
		ResourceTypeID: body.ResourceTypeID,
		Name:           body.Name,
		Description:    body.Description,
		Pattern:        schedule.Pattern(body.Pattern),
		Settings:       body.Settings.toSettings(),
		Capacity:       body.Capacity,
	}

	env, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var cfgErr *environment.ConfigError
		if errors.As(err, &cfgErr) {
			configError(c, cfgErr)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(env))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	env, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(env))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.checkPermission(c, existing.ResourceTypeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: permission denied"})
		return
	}

	var body UpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := environment.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Capacity:    body.Capacity,
	}
	if body.Pattern != nil {
		p := schedule.Pattern(*body.Pattern)
		req.Pattern = &p
	}
	if body.Settings != nil {
		s := body.Settings.toSettings()
		req.Settings = &s
	}

	env, err := h.service.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		var cfgErr *environment.ConfigError
		if errors.As(err, &cfgErr) {
			configError(c, cfgErr)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(env))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.checkPermission(c, existing.ResourceTypeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: permission denied"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

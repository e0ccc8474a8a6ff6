package http

import (
	"time"

	"github.com/hazelmere/envbooker-backend/internal/resourcetype"
)

type ResourceTypeResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Administrators []string  `json:"administrators"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewResponse(rt *resourcetype.ResourceType) ResourceTypeResponse {
	return ResourceTypeResponse{
		ID:             rt.ID,
		OrganizationID: rt.OrganizationID,
		Name:           rt.Name,
		Description:    rt.Description,
		Administrators: rt.Administrators,
		CreatedAt:      rt.CreatedAt,
	}
}

type CreateRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Administrators []string `json:"administrators"`
}

type UpdateRequest struct {
	Name           *string   `json:"name" binding:"omitempty"`
	Description    *string   `json:"description" binding:"omitempty"`
	Administrators *[]string `json:"administrators" binding:"omitempty"`
}

package http

import (
	"time"

	"github.com/hazelmere/envbooker-backend/internal/workspace"
)

type WorkspaceResponse struct {
	ID          string    `json:"id"`
	TeamID      string    `json:"team_id"`
	Name        string    `json:"name"`
	InstalledAt time.Time `json:"installed_at"`
}

func NewResponse(w *workspace.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:          w.ID,
		TeamID:      w.TeamID,
		Name:        w.Name,
		InstalledAt: w.InstalledAt,
	}
}

type InstallRequest struct {
	Name string `json:"name" binding:"required"`
}

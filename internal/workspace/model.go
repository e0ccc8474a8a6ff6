package workspace

import (
	"net/http"
	"time"

	"github.com/hazelmere/envbooker-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "workspace not found")
	ErrTeamIDRequired = apperror.New(http.StatusBadRequest, "team_id is required")
	ErrNameRequired   = apperror.New(http.StatusBadRequest, "name is required")
)

// Workspace is a chat workspace (a Slack team, a Discord guild) where the
// app is installed. Its TeamID is the organization scope on every
// resource-type query.
type Workspace struct {
	ID          string
	TeamID      string
	Name        string
	InstalledAt time.Time
}

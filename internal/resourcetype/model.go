package resourcetype

import (
	"net/http"
	"time"

	"github.com/hazelmere/envbooker-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "resource type not found")
	ErrNameRequired = apperror.New(http.StatusBadRequest, "name is required")
	ErrOrgRequired  = apperror.New(http.StatusBadRequest, "organization_id is required")
	ErrNameTaken    = apperror.New(http.StatusConflict, "a resource type with this name already exists in the organization")
)

// ResourceType groups environments of the same kind (e.g. Meeting Rooms).
// Administrators is the ordered list of chat user ids allowed to manage the
// type, its environments, and other holders' bookings.
type ResourceType struct {
	ID             string
	OrganizationID string
	Name           string
	Description    string
	Administrators []string
	CreatedAt      time.Time
}

// Filter defines parameters for listing resource types.
type Filter struct {
	OrganizationID string
	Page           int
	PageSize       int
}

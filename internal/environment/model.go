package environment

import (
	"net/http"
	"strings"
	"time"

	"github.com/hazelmere/envbooker-backend/internal/pkg/apperror"
	"github.com/hazelmere/envbooker-backend/internal/schedule"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "environment not found")
	ErrNameRequired         = apperror.New(http.StatusBadRequest, "name is required")
	ErrNameTaken            = apperror.New(http.StatusConflict, "an environment with this name already exists for the resource type")
	ErrResourceTypeRequired = apperror.New(http.StatusBadRequest, "resource_type_id is required")
)

// Environment is a bookable unit (a room, a rig, a lab bench) under a
// resource type. Its recurrence pattern and settings determine which slots
// the schedule package generates for it.
type Environment struct {
	ID             string
	ResourceTypeID string
	Name           string
	Description    string
	Pattern        schedule.Pattern
	Settings       schedule.Settings
	Capacity       int
	CreatedAt      time.Time
}

// Filter defines parameters for listing environments.
type Filter struct {
	ResourceTypeID string
	Page           int
	PageSize       int
}

// ConfigError reports invalid recurrence settings, tagged per form field so
// the caller can redisplay the configuration form. It is never a silent
// correction: the offending input is returned as-is.
type ConfigError struct {
	Fields []schedule.FieldError
}

func (e *ConfigError) Error() string {
	reasons := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		reasons[i] = f.Error()
	}
	return "invalid environment settings: " + strings.Join(reasons, "; ")
}

package http

import (
	"time"

	"github.com/hazelmere/envbooker-backend/internal/environment"
	"github.com/hazelmere/envbooker-backend/internal/schedule"
)

// SettingsPayload is the wire form of the recurrence settings. Only the
// fields relevant to the pattern are expected; the rest stay zero.
type SettingsPayload struct {
	DaysAhead  int        `json:"days_ahead,omitempty"`
	Instant    *time.Time `json:"instant,omitempty"`
	TimesOfDay []string   `json:"times_of_day,omitempty"`
}

func (p SettingsPayload) toSettings() schedule.Settings {
	s := schedule.Settings{
		DaysAhead:  p.DaysAhead,
		TimesOfDay: p.TimesOfDay,
	}
	if p.Instant != nil {
		s.Instant = p.Instant.UTC()
	}
	return s
}

func newSettingsPayload(s schedule.Settings) SettingsPayload {
	p := SettingsPayload{
		DaysAhead:  s.DaysAhead,
		TimesOfDay: s.TimesOfDay,
	}
	if !s.Instant.IsZero() {
		instant := s.Instant.UTC()
		p.Instant = &instant
	}
	return p
}

type EnvironmentResponse struct {
	ID             string          `json:"id"`
	ResourceTypeID string          `json:"resource_type_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Pattern        string          `json:"pattern"`
	Settings       SettingsPayload `json:"settings"`
	Capacity       int             `json:"capacity"`
	CreatedAt      time.Time       `json:"created_at"`
}

func NewResponse(e *environment.Environment) EnvironmentResponse {
	return EnvironmentResponse{
		ID:             e.ID,
		ResourceTypeID: e.ResourceTypeID,
		Name:           e.Name,
		Description:    e.Description,
		Pattern:        string(e.Pattern),
		Settings:       newSettingsPayload(e.Settings),
		Capacity:       e.Capacity,
		CreatedAt:      e.CreatedAt,
	}
}

type CreateRequest struct {
	ResourceTypeID string          `json:"resource_type_id" binding:"required,uuid"`
	Name           string          `json:"name" binding:"required"`
	Description    string          `json:"description"`
	Pattern        string          `json:"pattern" binding:"required,oneof=DAILY ONE_OFF CUSTOM"`
	Settings       SettingsPayload `json:"settings"`
	Capacity       int             `json:"capacity" binding:"omitempty,min=1"`
}

type UpdateRequest struct {
	Name        *string          `json:"name" binding:"omitempty"`
	Description *string          `json:"description" binding:"omitempty"`
	Pattern     *string          `json:"pattern" binding:"omitempty,oneof=DAILY ONE_OFF CUSTOM"`
	Settings    *SettingsPayload `json:"settings" binding:"omitempty"`
	Capacity    *int             `json:"capacity" binding:"omitempty,min=1"`
}

type ListEnvironmentsRequest struct {
	ResourceTypeID string `form:"resource_type_id" binding:"required,uuid"`
	Page           int    `form:"page" binding:"omitempty,min=1"`
	PageSize       int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

package environment

import (
	"context"
	"strings"
	"time"

	"github.com/hazelmere/envbooker-backend/internal/schedule"
)

type CreateRequest struct {
	ResourceTypeID string
	Name           string
	Description    string
	Pattern        schedule.Pattern
	Settings       schedule.Settings
	Capacity       int
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Pattern     *schedule.Pattern
	Settings    *schedule.Settings
	Capacity    *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Environment, error)
	GetByID(ctx context.Context, id string) (*Environment, error)
	List(ctx context.Context, filter Filter) ([]*Environment, int, error)
	// ListBookable returns the environments of a resource type that still
	// have at least one bookable slot as seen from loc, dropping expired
	// one-offs the way the home view expects.
	ListBookable(ctx context.Context, resourceTypeID string, loc *time.Location) ([]*Environment, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Environment, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo  Repository
	clock schedule.Clock
}

func NewService(repo Repository, clock schedule.Clock) Service {
	return &service{repo: repo, clock: clock}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Environment, error) {
	if req.ResourceTypeID == "" {
		return nil, ErrResourceTypeRequired
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	if fieldErrs := schedule.ValidateSettings(req.Pattern, req.Settings, s.clock.Now()); len(fieldErrs) > 0 {
		return nil, &ConfigError{Fields: fieldErrs}
	}

	capacity := req.Capacity
	if capacity < 1 {
		// Conservative default: one holder per slot.
		capacity = 1
	}

	e := &Environment{
		ResourceTypeID: req.ResourceTypeID,
		Name:           req.Name,
		Description:    req.Description,
		Pattern:        req.Pattern,
		Settings:       req.Settings,
		Capacity:       capacity,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Environment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Environment, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListBookable(ctx context.Context, resourceTypeID string, loc *time.Location) ([]*Environment, error) {
	envs, _, err := s.repo.List(ctx, Filter{ResourceTypeID: resourceTypeID, PageSize: 100})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	bookable := make([]*Environment, 0, len(envs))
	for _, e := range envs {
		if len(schedule.Generate(e.Pattern, e.Settings, loc, now)) > 0 {
			bookable = append(bookable, e)
		}
	}
	return bookable, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Environment, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		e.Name = *req.Name
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Pattern != nil {
		e.Pattern = *req.Pattern
	}
	if req.Settings != nil {
		e.Settings = *req.Settings
	}
	if req.Capacity != nil && *req.Capacity >= 1 {
		e.Capacity = *req.Capacity
	}

	// Re-validate the resulting pattern/settings combination, whichever of
	// the two changed.
	if req.Pattern != nil || req.Settings != nil {
		if fieldErrs := schedule.ValidateSettings(e.Pattern, e.Settings, s.clock.Now()); len(fieldErrs) > 0 {
			return nil, &ConfigError{Fields: fieldErrs}
		}
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

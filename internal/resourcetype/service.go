package resourcetype

import (
	"context"
	"strings"
)

type CreateRequest struct {
	OrganizationID string
	Name           string
	Description    string
	Administrators []string
	// CreatorID becomes the sole administrator when none are given.
	CreatorID string
}

type UpdateRequest struct {
	Name           *string
	Description    *string
	Administrators *[]string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*ResourceType, error)
	GetByID(ctx context.Context, id string) (*ResourceType, error)
	List(ctx context.Context, filter Filter) ([]*ResourceType, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*ResourceType, error)
	Delete(ctx context.Context, id string) error

	// IsAdministrator reports whether userID is in the type's
	// administrator list.
	IsAdministrator(ctx context.Context, id, userID string) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*ResourceType, error) {
	if req.OrganizationID == "" {
		return nil, ErrOrgRequired
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	admins := req.Administrators
	if len(admins) == 0 && req.CreatorID != "" {
		admins = []string{req.CreatorID}
	}

	rt := &ResourceType{
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Description:    req.Description,
		Administrators: admins,
	}

	if err := s.repo.Create(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*ResourceType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*ResourceType, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*ResourceType, error) {
	rt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		rt.Name = *req.Name
	}
	if req.Description != nil {
		rt.Description = *req.Description
	}
	if req.Administrators != nil {
		rt.Administrators = *req.Administrators
	}

	if err := s.repo.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	// Check existence
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) IsAdministrator(ctx context.Context, id, userID string) (bool, error) {
	rt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	for _, admin := range rt.Administrators {
		if admin == userID {
			return true, nil
		}
	}
	return false, nil
}

package workspace

import (
	"context"
	"strings"
)

type InstallRequest struct {
	TeamID string
	Name   string
}

type Service interface {
	Install(ctx context.Context, req InstallRequest) (*Workspace, error)
	GetByTeamID(ctx context.Context, teamID string) (*Workspace, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Install(ctx context.Context, req InstallRequest) (*Workspace, error) {
	if strings.TrimSpace(req.TeamID) == "" {
		return nil, ErrTeamIDRequired
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	w := &Workspace{
		TeamID: req.TeamID,
		Name:   req.Name,
	}

	if err := s.repo.Upsert(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) GetByTeamID(ctx context.Context, teamID string) (*Workspace, error) {
	return s.repo.GetByTeamID(ctx, teamID)
}

package share

import (
	"context"
	"strings"
)

type CreateRequest struct {
	EnvironmentID string
	ChannelID     string
	MessageRef    string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Share, error)
	ListByEnvironment(ctx context.Context, environmentID string) ([]*Share, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Share, error) {
	if strings.TrimSpace(req.ChannelID) == "" {
		return nil, ErrChannelRequired
	}
	if strings.TrimSpace(req.MessageRef) == "" {
		return nil, ErrMessageRequired
	}

	record := &Share{
		EnvironmentID: req.EnvironmentID,
		ChannelID:     req.ChannelID,
		MessageRef:    req.MessageRef,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *service) ListByEnvironment(ctx context.Context, environmentID string) ([]*Share, error) {
	return s.repo.ListByEnvironment(ctx, environmentID)
}

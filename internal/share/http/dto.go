package http

import (
	"time"

	"github.com/hazelmere/envbooker-backend/internal/share"
)

type ShareResponse struct {
	ID            string    `json:"id"`
	EnvironmentID string    `json:"environment_id"`
	ChannelID     string    `json:"channel_id"`
	MessageRef    string    `json:"message_ref"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewResponse(s *share.Share) ShareResponse {
	return ShareResponse{
		ID:            s.ID,
		EnvironmentID: s.EnvironmentID,
		ChannelID:     s.ChannelID,
		MessageRef:    s.MessageRef,
		CreatedAt:     s.CreatedAt,
	}
}

type CreateRequest struct {
	EnvironmentID string `json:"environment_id" binding:"required,uuid"`
	ChannelID     string `json:"channel_id" binding:"required"`
	MessageRef    string `json:"message_ref" binding:"required"`
}

type ListSharesRequest struct {
	EnvironmentID string `form:"environment_id" binding:"required,uuid"`
}

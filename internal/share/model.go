package share

import (
	"net/http"
	"time"

	"github.com/hazelmere/envbooker-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "share not found")
	ErrChannelRequired = apperror.New(http.StatusBadRequest, "channel_id is required")
	ErrMessageRequired = apperror.New(http.StatusBadRequest, "message_ref is required")
)

// Share records where an environment's booking summary was broadcast, so
// the gateway can find and update the message later. The core never posts
// messages itself.
type Share struct {
	ID            string
	EnvironmentID string
	ChannelID     string
	MessageRef    string
	CreatedAt     time.Time
}

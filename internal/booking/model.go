package booking

import (
	"net/http"
	"time"

	"github.com/hazelmere/envbooker-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "booking not found")
	ErrAlreadyBooked       = apperror.New(http.StatusConflict, "you already hold this slot")
	ErrSlotFull            = apperror.New(http.StatusConflict, "slot is at capacity")
	ErrSlotInvalid         = apperror.New(http.StatusBadRequest, "slot is not currently bookable")
	ErrPermissionDenied    = apperror.New(http.StatusForbidden, "permission denied")
	ErrEnvironmentNotFound = apperror.New(http.StatusNotFound, "environment not found")
	ErrInvalidTimezone     = apperror.New(http.StatusBadRequest, "invalid timezone")
)

// Booking is one holder's reservation of one slot of an environment.
// (environment_id, slot_key, holder_id) is unique: a holder cannot hold the
// same slot twice.
type Booking struct {
	ID            string
	EnvironmentID string
	SlotKey       string
	HolderID      string
	CreatedAt     time.Time
}

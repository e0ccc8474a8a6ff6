package http

import (
	"time"

	"github.com/hazelmere/envbooker-backend/internal/booking"
	"github.com/hazelmere/envbooker-backend/internal/schedule"
)

type SlotResponse struct {
	Key       string   `json:"key"`
	Label     string   `json:"label"`
	Occupants []string `json:"occupants"`
	IsFull    bool     `json:"is_full"`
	IsMine    bool     `json:"is_mine"`
}

func NewSlotResponse(a schedule.Availability) SlotResponse {
	occupants := a.Occupants
	if occupants == nil {
		occupants = []string{}
	}
	return SlotResponse{
		Key:       a.Key,
		Label:     a.Label,
		Occupants: occupants,
		IsFull:    a.IsFull,
		IsMine:    a.IsMine,
	}
}

type BookingResponse struct {
	ID            string    `json:"id"`
	EnvironmentID string    `json:"environment_id"`
	SlotKey       string    `json:"slot_key"`
	HolderID      string    `json:"holder_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		EnvironmentID: b.EnvironmentID,
		SlotKey:       b.SlotKey,
		HolderID:      b.HolderID,
		CreatedAt:     b.CreatedAt,
	}
}

type BookRequest struct {
	SlotKey string `json:"slot_key" binding:"required"`
}

type CancelRequest struct {
	SlotKey string `json:"slot_key" binding:"required"`
	// HolderID lets a resource-type administrator cancel on someone
	// else's behalf. Empty means the actor cancels their own booking.
	HolderID string `json:"holder_id" binding:"omitempty"`
}

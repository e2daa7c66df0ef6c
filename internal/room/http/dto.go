package http

import (
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
)

type ListRoomsRequest struct {
	request.ListParams
	LocationID string `form:"location_id" binding:"omitempty,uuid"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=name created_at"`
}

type RoomResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	LocationID string    `json:"location_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:         r.ID,
		Name:       r.Name,
		LocationID: r.LocationID,
		CreatedAt:  r.CreatedAt,
	}
}

type CreateRequest struct {
	Name       string `json:"name" binding:"required"`
	LocationID string `json:"location_id" binding:"required,uuid"`
}

type UpdateRequest struct {
	Name *string `json:"name" binding:"omitempty"`
}

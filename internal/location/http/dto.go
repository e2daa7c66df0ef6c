package http

import (
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/location"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/request"
)

// ListLocationsRequest defines query parameters for listing locations.
type ListLocationsRequest struct {
	request.ListParams
	Keyword string `form:"q"`
	Opening *bool  `form:"opening"`
	SortBy  string `form:"sort_by" binding:"omitempty,oneof=name created_at"`
}

type LocationResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	Description       string    `json:"description"`
	OpeningHoursStart string    `json:"opening_hours_start"`
	OpeningHoursEnd   string    `json:"opening_hours_end"`
	Opening           bool      `json:"opening"`
	CreatedAt         time.Time `json:"created_at"`
}

func NewLocationResponse(l *location.Location) LocationResponse {
	return LocationResponse{
		ID:                l.ID,
		Name:              l.Name,
		Address:           l.Address,
		Description:       l.Description,
		OpeningHoursStart: l.OpeningHoursStart,
		OpeningHoursEnd:   l.OpeningHoursEnd,
		Opening:           l.Opening,
		CreatedAt:         l.CreatedAt,
	}
}

type CreateLocationRequest struct {
	Name              string `json:"name" binding:"required"`
	Address           string `json:"address"`
	Description       string `json:"description"`
	OpeningHoursStart string `json:"opening_hours_start" binding:"required"`
	OpeningHoursEnd   string `json:"opening_hours_end" binding:"required"`
	Opening           *bool  `json:"opening"` // defaults to true
}

type UpdateLocationRequest struct {
	Name              *string `json:"name"`
	Address           *string `json:"address"`
	Description       *string `json:"description"`
	OpeningHoursStart *string `json:"opening_hours_start"`
	OpeningHoursEnd   *string `json:"opening_hours_end"`
	Opening           *bool   `json:"opening"`
}

package room

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "room not found")
	ErrEmptyName       = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidLocation = apperror.New(http.StatusBadRequest, "invalid location_id")
	ErrNameTaken       = apperror.New(http.StatusConflict, "room name already used in this location")
)

// Room is a bookable treatment room of a location.
type Room struct {
	ID         string
	LocationID string
	Name       string
	CreatedAt  time.Time
}

// Filter defines parameters for listing rooms.
type Filter struct {
	LocationID string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

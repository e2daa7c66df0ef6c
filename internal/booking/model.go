package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict       = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidTimeRange   = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidStatus      = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrRoomNotFound       = apperror.New(http.StatusNotFound, "room not found")
	ErrPermissionDenied   = apperror.New(http.StatusForbidden, "permission denied")
	ErrStartTimePast      = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrNotAligned         = apperror.New(http.StatusBadRequest, "start and end time must be on a 30 minute boundary")
	ErrSpansMultipleDays  = apperror.New(http.StatusBadRequest, "booking must start and end on the same day")
	ErrOutsideOpeningHour = apperror.New(http.StatusBadRequest, "booking is outside the opening hours of the location")
	ErrLocationClosed     = apperror.New(http.StatusConflict, "location is not accepting bookings")
)

// SlotDuration is the booking granularity; it matches the rows of the day grid.
const SlotDuration = 30 * time.Minute

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID           string
	RoomID       string
	RoomName     string
	UserID       string
	UserName     string
	LocationID   string
	LocationName string
	StartTime    time.Time
	EndTime      time.Time
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Filter struct {
	UserID     string
	RoomID     string
	LocationID string
	Status     string
	StartTime  *time.Time // Filter bookings ending after this time
	EndTime    *time.Time // Filter bookings starting before this time
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

// TimeSlot is a free interval of a room.
type TimeSlot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

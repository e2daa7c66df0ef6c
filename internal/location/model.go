package location

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "location not found")
	ErrNameRequired        = apperror.New(http.StatusBadRequest, "name is required")
	ErrInvalidOpeningHours = apperror.New(http.StatusBadRequest, "opening hours must be HH:MM[:SS] with start before end")
)

// Location is a practice with bookable rooms.
type Location struct {
	ID                string
	Name              string
	Address           string
	Description       string
	OpeningHoursStart string // Format: HH:MM:SS
	OpeningHoursEnd   string // Format: HH:MM:SS
	Opening           bool   // Accepting bookings
	CreatedAt         time.Time
}

// LocationFilter defines parameters for listing locations.
type LocationFilter struct {
	Keyword   string // Search in Name or Address
	Opening   *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// ParseClock parses "HH:MM:SS" or "HH:MM" into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		// Fallback: try short format if long format fails
		t, err = time.Parse("15:04", s)
		if err != nil {
			return 0, fmt.Errorf("invalid clock %q: %w", s, err)
		}
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second, nil
}

// OpenWindow returns the opening and closing instants of the location on the given day.
// day is interpreted in its own location; only its calendar date is used.
func (l *Location) OpenWindow(day time.Time) (time.Time, time.Time, error) {
	open, err := ParseClock(l.OpeningHoursStart)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseClock(l.OpeningHoursEnd)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	// Built from wall-clock fields so DST transitions do not shift the hours.
	at := func(d time.Duration) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, int(d/time.Second), 0, day.Location())
	}
	return at(open), at(end), nil
}

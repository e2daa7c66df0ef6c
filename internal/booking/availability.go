package booking

import (
	"fmt"
	"sort"
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/location"
)

// CalculateAvailability returns the free intervals between openStr and closeStr on the
// calendar day of date, given the bookings of one room. Cancelled bookings are ignored;
// input may be unsorted and overlapping. A fully booked day yields nil.
func CalculateAvailability(date time.Time, openStr, closeStr string, bookings []*Booking) ([]TimeSlot, error) {
	day := &location.Location{OpeningHoursStart: openStr, OpeningHoursEnd: closeStr}
	open, closeAt, err := day.OpenWindow(date)
	if err != nil {
		return nil, fmt.Errorf("invalid opening hours: %w", err)
	}
	if !open.Before(closeAt) {
		return nil, fmt.Errorf("opening hours %s-%s are empty", openStr, closeStr)
	}

	tz := date.Location()
	busy := make([]TimeSlot, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == StatusCancelled {
			continue
		}
		start, end := b.StartTime.In(tz), b.EndTime.In(tz)
		if !start.Before(closeAt) || !end.After(open) {
			continue
		}
		if start.Before(open) {
			start = open
		}
		if end.After(closeAt) {
			end = closeAt
		}
		busy = append(busy, TimeSlot{StartTime: start, EndTime: end})
	}

	sort.Slice(busy, func(i, j int) bool {
		return busy[i].StartTime.Before(busy[j].StartTime)
	})

	var free []TimeSlot
	cursor := open
	for _, b := range busy {
		if b.StartTime.After(cursor) {
			free = append(free, TimeSlot{StartTime: cursor, EndTime: b.StartTime})
		}
		if b.EndTime.After(cursor) {
			cursor = b.EndTime
		}
	}
	if cursor.Before(closeAt) {
		free = append(free, TimeSlot{StartTime: cursor, EndTime: closeAt})
	}
	return free, nil
}

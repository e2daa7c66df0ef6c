package schedule

import (
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/booking"
	"github.com/nekogravitycat/room-booking-backend/internal/timegrid"
)

// Window returns [08:00, 22:00) of the calendar day of date in tz.
func Window(date time.Time, tz *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	from := time.Date(y, m, d, timegrid.FirstHour, 0, 0, 0, tz)
	to := time.Date(y, m, d, timegrid.FirstHour, timegrid.RowCount*timegrid.SlotMinutes, 0, 0, tz)
	return from, to
}

func floorSlot(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()/timegrid.SlotMinutes*timegrid.SlotMinutes, 0, 0, t.Location())
}

func ceilSlot(t time.Time) time.Time {
	f := floorSlot(t)
	if f.Equal(t) {
		return t
	}
	return time.Date(f.Year(), f.Month(), f.Day(), f.Hour(), f.Minute()+timegrid.SlotMinutes, 0, 0, f.Location())
}

// Project maps a stored booking onto the grid window [from, to). Times are clamped to the
// window, the start floored and the end ceiled to the slot size. Booker name and ID are
// only carried for privileged viewers. ok is false when the booking misses the window.
func Project(b *booking.Booking, from, to time.Time, viewer Viewer) (timegrid.Booking, bool) {
	tz := from.Location()
	start, end := b.StartTime.In(tz), b.EndTime.In(tz)
	if !start.Before(to) || !end.After(from) {
		return timegrid.Booking{}, false
	}
	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	start, end = floorSlot(start), ceilSlot(end)

	out := timegrid.Booking{
		RoomID:    b.RoomID,
		StartTime: start.Format("15:04"),
		EndTime:   end.Format("15:04"),
	}
	if viewer.Privileged() {
		out.ID = b.ID
		out.BookerName = b.UserName
	}
	return out, true
}

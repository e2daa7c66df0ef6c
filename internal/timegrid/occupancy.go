package timegrid

// rowRange returns the start and end rows of a booking.
// ok is false when either time is malformed; such a booking neither starts nor covers any row.
func rowRange(b Booking) (start, end int, ok bool) {
	start, err := ParseRow(b.StartTime)
	if err != nil {
		return 0, 0, false
	}
	end, err = ParseRow(b.EndTime)
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

// StartsAt returns the first booking, in input order, of roomID whose start row is row.
// Two bookings of one room starting on the same row is an upstream inconsistency;
// the later ones are never reported.
func StartsAt(bookings []Booking, roomID string, row int) (Booking, bool) {
	for _, b := range bookings {
		if b.RoomID != roomID {
			continue
		}
		start, _, ok := rowRange(b)
		if ok && start == row {
			return b, true
		}
	}
	return Booking{}, false
}

// IsCovered reports whether row lies strictly inside a span of roomID that started on an earlier row.
// The start row belongs to StartsAt and the end row is free again.
func IsCovered(bookings []Booking, roomID string, row int) bool {
	for _, b := range bookings {
		if b.RoomID != roomID {
			continue
		}
		start, end, ok := rowRange(b)
		if ok && start < row && row < end {
			return true
		}
	}
	return false
}

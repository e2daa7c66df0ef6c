package timegrid

// RowSpan returns how many rows a booking occupies. It is never below 1,
// so a booking with an inverted, empty or unparseable range still gets a visible cell.
func RowSpan(b Booking) int {
	start, err := ParseRow(b.StartTime)
	if err != nil {
		return 1
	}
	end, err := ParseRow(b.EndTime)
	if err != nil {
		return 1
	}
	return max(end-start, 1)
}

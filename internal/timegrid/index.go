package timegrid

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// FirstHour is the wall-clock hour of row 0.
	FirstHour = 8
	// SlotMinutes is the length of one row.
	SlotMinutes = 30
	// RowCount is the number of rows in a day grid (08:00 to 21:30 start times).
	RowCount = 28
	// NoRow is returned by RowIndex for strings that have no row.
	NoRow = -1 << 31
)

var ErrMalformedTime = errors.New("malformed HH:mm time")

// ParseRow converts an "HH:mm" wall-clock time into a row index.
// Hour and minute are read positionally from s[0:2] and s[3:5]; the separator is not checked.
// The window is not enforced: "07:00" is -2 and "22:00" is 28.
// Minutes other than 30 add nothing, so "09:15" and "09:45" both land on the 09:00 row.
func ParseRow(s string) (int, error) {
	if len(s) < 5 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	hour, err := strconv.Atoi(s[0:2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	minute, err := strconv.Atoi(s[3:5])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}

	row := (hour - FirstHour) * 2
	if minute == 30 {
		row++
	}
	return row, nil
}

// RowIndex is ParseRow without the error; malformed input yields NoRow.
func RowIndex(s string) int {
	row, err := ParseRow(s)
	if err != nil {
		return NoRow
	}
	return row
}

// RowTime is the label of a row's start, e.g. 0 -> "08:00", 27 -> "21:30".
func RowTime(row int) string {
	mins := FirstHour*60 + row*SlotMinutes
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

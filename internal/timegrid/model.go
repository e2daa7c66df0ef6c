package timegrid

import "fmt"

// Room is one column of the grid.
type Room struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Booking is the read-only projection of a stored booking that the grid consumes.
// StartTime and EndTime are "HH:mm" in the display timezone.
// BookerName and ID are left empty for viewers that may not see them.
type Booking struct {
	ID         string `json:"id,omitempty"`
	RoomID     string `json:"room_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BookerName string `json:"booker_name,omitempty"`
}

// CellKind classifies one (room, row) position.
type CellKind int

const (
	Empty CellKind = iota
	SpanStart
	Covered
)

func (k CellKind) String() string {
	switch k {
	case SpanStart:
		return "span_start"
	case Covered:
		return "covered"
	default:
		return "empty"
	}
}

// MarshalText lets CellKind appear as a string in JSON.
func (k CellKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *CellKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "empty":
		*k = Empty
	case "span_start":
		*k = SpanStart
	case "covered":
		*k = Covered
	default:
		return fmt.Errorf("unknown cell kind %q", text)
	}
	return nil
}

// Cell is the derived state of one grid position.
// Booking and RowSpan are only set for SpanStart.
type Cell struct {
	Kind    CellKind `json:"kind"`
	Booking *Booking `json:"booking,omitempty"`
	RowSpan int      `json:"row_span,omitempty"`
}

package timegrid

// Grid is the render plan of one day: RowCount rows by len(Rooms) columns.
type Grid struct {
	Rooms []Room
	// Rows is row-major: Rows[row][roomIndex].
	Rows [][]Cell
}

// Build classifies every (room, row) position.
// Rows are evaluated 0..RowCount-1 and rooms in the given order. The covered check runs
// before the start check, so with overlapping input the span that started earlier keeps its rows.
func Build(rooms []Room, bookings []Booking) Grid {
	byRoom := make(map[string][]Booking, len(rooms))
	for _, b := range bookings {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}

	g := Grid{
		Rooms: append([]Room(nil), rooms...),
		Rows:  make([][]Cell, RowCount),
	}
	for row := 0; row < RowCount; row++ {
		cells := make([]Cell, len(rooms))
		for i, room := range rooms {
			roomBookings := byRoom[room.ID]
			if IsCovered(roomBookings, room.ID, row) {
				cells[i] = Cell{Kind: Covered}
				continue
			}
			if b, ok := StartsAt(roomBookings, room.ID, row); ok {
				cells[i] = Cell{Kind: SpanStart, Booking: &b, RowSpan: RowSpan(b)}
				continue
			}
			cells[i] = Cell{Kind: Empty}
		}
		g.Rows[row] = cells
	}
	return g
}

// At returns the cell of the room at index roomIndex on the given row.
func (g Grid) At(roomIndex, row int) Cell {
	return g.Rows[row][roomIndex]
}

// Column returns the cells of one room from row 0 to the last row.
func (g Grid) Column(roomIndex int) []Cell {
	col := make([]Cell, len(g.Rows))
	for row, cells := range g.Rows {
		col[row] = cells[roomIndex]
	}
	return col
}

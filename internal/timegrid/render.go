package timegrid

import (
	"fmt"
	"html/template"
	"io"
)

// TableCell is one cell that a table renderer must emit.
type TableCell struct {
	RoomID  string   `json:"room_id"`
	Kind    CellKind `json:"kind"`
	RowSpan int      `json:"row_span"`
	Booking *Booking `json:"booking,omitempty"`
}

// TableRow holds the cells emitted for one row. Covered positions are absent,
// so len(Cells) can be smaller than the number of rooms.
type TableRow struct {
	Row   int         `json:"row"`
	Time  string      `json:"time"`
	Cells []TableCell `json:"cells"`
}

// Table turns the grid into row-major table markup instructions.
func (g Grid) Table() []TableRow {
	rows := make([]TableRow, 0, len(g.Rows))
	for row, cells := range g.Rows {
		tr := TableRow{Row: row, Time: RowTime(row), Cells: make([]TableCell, 0, len(cells))}
		for i, c := range cells {
			switch c.Kind {
			case Covered:
				continue
			case SpanStart:
				tr.Cells = append(tr.Cells, TableCell{RoomID: g.Rooms[i].ID, Kind: SpanStart, RowSpan: c.RowSpan, Booking: c.Booking})
			default:
				tr.Cells = append(tr.Cells, TableCell{RoomID: g.Rooms[i].ID, Kind: Empty, RowSpan: 1})
			}
		}
		rows = append(rows, tr)
	}
	return rows
}

var tableTmpl = template.Must(template.New("grid").Funcs(template.FuncMap{
	"label": bookingLabel,
}).Parse(`<table class="time-grid">
<thead><tr><th></th>{{range .Rooms}}<th data-room-id="{{.ID}}">{{.Name}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr><th>{{.Time}}</th>
{{- range .Cells}}
{{- if eq .RowSpan 1}}{{if .Booking}}<td class="booked"{{with .Booking.ID}} data-booking-id="{{.}}"{{end}}>{{label .Booking}}</td>{{else}}<td class="free"></td>{{end}}
{{- else}}<td class="booked" rowspan="{{.RowSpan}}"{{with .Booking.ID}} data-booking-id="{{.}}"{{end}}>{{label .Booking}}</td>{{end}}
{{- end}}</tr>
{{- end}}
</tbody>
</table>
`))

func bookingLabel(b *Booking) string {
	if b.BookerName != "" {
		return fmt.Sprintf("%s-%s %s", b.StartTime, b.EndTime, b.BookerName)
	}
	return fmt.Sprintf("%s-%s", b.StartTime, b.EndTime)
}

// RenderHTML writes the grid as an HTML table. Covered cells produce no <td>.
func RenderHTML(w io.Writer, g Grid) error {
	data := struct {
		Rooms []Room
		Rows  []TableRow
	}{
		Rooms: g.Rooms,
		Rows:  g.Table(),
	}
	if err := tableTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render grid table failed: %w", err)
	}
	return nil
}

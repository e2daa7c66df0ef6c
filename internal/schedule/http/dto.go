package http

import (
	"github.com/nekogravitycat/room-booking-backend/internal/schedule"
	"github.com/nekogravitycat/room-booking-backend/internal/timegrid"
)

type LocationTag struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	OpeningHoursStart string `json:"opening_hours_start"`
	OpeningHoursEnd   string `json:"opening_hours_end"`
}

// GridResponse is the table render plan of one day. Covered positions are omitted
// from Rows, so a row may have fewer cells than there are rooms.
type GridResponse struct {
	Location LocationTag         `json:"location"`
	Date     string              `json:"date"`
	Rooms    []timegrid.Room     `json:"rooms"`
	Rows     []timegrid.TableRow `json:"rows"`
}

func NewGridResponse(d *schedule.DayGrid) GridResponse {
	rooms := d.Grid.Rooms
	if rooms == nil {
		rooms = []timegrid.Room{}
	}
	return GridResponse{
		Location: LocationTag{
			ID:                d.Location.ID,
			Name:              d.Location.Name,
			OpeningHoursStart: d.Location.OpeningHoursStart,
			OpeningHoursEnd:   d.Location.OpeningHoursEnd,
		},
		Date:  d.Date,
		Rooms: rooms,
		Rows:  d.Grid.Table(),
	}
}

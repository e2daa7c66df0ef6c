package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/location"
	"github.com/nekogravitycat/room-booking-backend/internal/schedule"
	"github.com/nekogravitycat/room-booking-backend/internal/timegrid"
)

const locID = "5b0c7a0e-4b8e-4f43-9d39-3f1f5c7b2a10"

type stubService struct {
	gotDate   time.Time
	gotViewer schedule.Viewer
}

func (s *stubService) DayGrid(_ context.Context, locationID string, date time.Time, viewer schedule.Viewer) (*schedule.DayGrid, error) {
	if locationID != locID {
		return nil, location.ErrNotFound
	}
	s.gotDate, s.gotViewer = date, viewer

	rooms := []timegrid.Room{{ID: "r1", Name: "Room 1"}, {ID: "r2", Name: "Room 2"}}
	bookings := []timegrid.Booking{{RoomID: "r1", StartTime: "09:00", EndTime: "10:00"}}
	return &schedule.DayGrid{
		Location: &location.Location{ID: locationID, Name: "Main practice"},
		Date:     date.Format(time.DateOnly),
		Grid:     timegrid.Build(rooms, bookings),
	}, nil
}

func newRouter(svc schedule.Service, admin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pass := func(c *gin.Context) { c.Next() }
	viewer := func(c *gin.Context) {
		auth.SetSystemAdmin(c, admin)
		c.Next()
	}
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), pass, viewer)
	return r
}

func TestGridJSON(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/locations/"+locID+"/grid?date=2026-05-04", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.gotViewer.IsSystemAdmin)
	assert.Equal(t, "2026-05-04", svc.gotDate.Format(time.DateOnly))

	var resp GridResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Main practice", resp.Location.Name)
	assert.Len(t, resp.Rooms, 2)
	require.Len(t, resp.Rows, timegrid.RowCount)

	// Row 3 (09:30) omits the covered cell of room 1.
	assert.Len(t, resp.Rows[2].Cells, 2)
	assert.Len(t, resp.Rows[3].Cells, 1)
	assert.Equal(t, "09:30", resp.Rows[3].Time)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	cell := raw["rows"].([]any)[2].(map[string]any)["cells"].([]any)[0].(map[string]any)
	assert.Equal(t, "span_start", cell["kind"])
	assert.EqualValues(t, 2, cell["row_span"])
}

func TestGridHTML(t *testing.T) {
	r := newRouter(&stubService{}, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/locations/"+locID+"/grid.html?date=2026-05-04", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, `<table class="time-grid">`)
	assert.Contains(t, body, `rowspan="2"`)
	assert.Equal(t, timegrid.RowCount*2-1, strings.Count(body, "<td"))
}

func TestGridBadRequests(t *testing.T) {
	r := newRouter(&stubService{}, false)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"missing date", "/v1/locations/" + locID + "/grid", http.StatusBadRequest},
		{"malformed date", "/v1/locations/" + locID + "/grid?date=04.05.2026", http.StatusBadRequest},
		{"invalid id", "/v1/locations/not-a-uuid/grid?date=2026-05-04", http.StatusBadRequest},
		{"unknown location", "/v1/locations/00000000-0000-4000-8000-000000000000/grid?date=2026-05-04", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

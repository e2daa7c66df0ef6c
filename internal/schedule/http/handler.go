package http

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/room-booking-backend/internal/schedule"
	"github.com/nekogravitycat/room-booking-backend/internal/timegrid"
)

type Handler struct {
	service schedule.Service
}

func NewHandler(service schedule.Service) *Handler {
	return &Handler{service: service}
}

// load binds the location and date and builds the grid for the current viewer.
func (h *Handler) load(c *gin.Context) (*schedule.DayGrid, bool) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid UUID", err)
		return nil, false
	}

	var q request.DateRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return nil, false
	}
	// Binding already checked the layout.
	date, _ := time.Parse(time.DateOnly, q.Date)

	viewer := schedule.Viewer{
		UserID:        auth.GetUserID(c),
		IsSystemAdmin: auth.IsSystemAdmin(c),
	}

	grid, err := h.service.DayGrid(c.Request.Context(), uri.ID, date, viewer)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return grid, true
}

// Grid returns the day grid of a location as a JSON table plan.
func (h *Handler) Grid(c *gin.Context) {
	grid, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, NewGridResponse(grid))
}

// GridHTML returns the day grid of a location as an HTML table fragment.
func (h *Handler) GridHTML(c *gin.Context) {
	grid, ok := h.load(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := timegrid.RenderHTML(&buf, grid.Grid); err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
)

func TestNewPageResponse(t *testing.T) {
	p := NewPageResponse[string](nil, 1, 20, 0)
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"page":1,"page_size":20,"total":0,"total_pages":0}`, string(raw))

	assert.Equal(t, 3, NewPageResponse([]int{1}, 3, 20, 41).TotalPages)
	assert.Equal(t, 2, NewPageResponse([]int{1}, 2, 20, 40).TotalPages)
}

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"app error", apperror.New(http.StatusConflict, "time slot already booked"), http.StatusConflict, `{"error":"time slot already booked"}`},
		{"wrapped app error", errors.Join(errors.New("ctx"), apperror.New(http.StatusNotFound, "room not found")), http.StatusNotFound, `{"error":"room not found"}`},
		{"plain error", errors.New("connection reset"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Error(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiterBurstThenRefill(t *testing.T) {
	l := newIPRateLimiter(6)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }

	for i := 0; i < 6; i++ {
		assert.True(t, l.allow("10.0.0.1"), "request %d", i)
	}
	assert.False(t, l.allow("10.0.0.1"))

	// Other clients have their own bucket.
	assert.True(t, l.allow("10.0.0.2"))

	// 6 per minute refills one token every 10 seconds.
	clock = clock.Add(10 * time.Second)
	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))
}

func TestIPRateLimiterEvictsIdleVisitors(t *testing.T) {
	l := newIPRateLimiter(1)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }

	l.allow("10.0.0.1")
	l.allow("10.0.0.2")
	assert.Len(t, l.visitors, 2)

	clock = clock.Add(idleLimiterTTL + time.Minute)
	l.allow("10.0.0.3")
	assert.Len(t, l.visitors, 1)
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimitPerIP(2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.7:5000"
		r.ServeHTTP(w, req)
		codes[i] = w.Code
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func setupLimitedRouter(limiter *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(limiter.RateLimit())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router
}

func getAs(t *testing.T, router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("GET", "/ping", nil)
	require.NoError(t, err)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	router := setupLimitedRouter(NewRateLimiter(rate.Every(time.Minute), 2))

	assert.Equal(t, http.StatusOK, getAs(t, router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, getAs(t, router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, getAs(t, router, "10.0.0.1:1234").Code)
}

func TestRateLimitIsPerClient(t *testing.T) {
	router := setupLimitedRouter(NewRateLimiter(rate.Every(time.Minute), 1))

	// One client burning its budget leaves the other untouched.
	assert.Equal(t, http.StatusOK, getAs(t, router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, getAs(t, router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, getAs(t, router, "10.0.0.2:1234").Code)
}

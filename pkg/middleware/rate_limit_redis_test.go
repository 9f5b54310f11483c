package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	defer client.Close()

	// A long window keeps all requests in one bucket.
	rl := NewRedisRateLimiter(client, 0.0001, 2, time.Hour)
	r := gin.New()
	r.POST("/contact", rl.Middleware("contact"), func(c *gin.Context) { c.Status(http.StatusAccepted) })

	send := func(remote string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = remote
		r.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusAccepted, send("10.0.0.1:1").Code)
	require.Equal(t, http.StatusAccepted, send("10.0.0.1:1").Code)
	w := send("10.0.0.1:1")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "3600", w.Header().Get("Retry-After"))
	require.Equal(t, http.StatusAccepted, send("10.0.0.2:1").Code)

	keys := m.Keys()
	require.Len(t, keys, 2)
	require.True(t, m.TTL(keys[0]) > 0, "bucket keys expire")
}

func TestRedisRateLimiterUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m, err := mr.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: m.Addr(), MaxRetries: -1})
	defer client.Close()
	m.Close()

	r := gin.New()
	r.POST("/contact", NewRedisRateLimiter(client, 1, 1, time.Minute).Middleware("contact"), func(c *gin.Context) { c.Status(http.StatusAccepted) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/contact", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

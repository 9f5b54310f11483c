package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"devblog/pkg/logger"
	"devblog/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window limiter shared through Redis, for
// running several instances behind one address. Each client IP may make
// floor(rps*window)+burst requests per window.
type RedisRateLimiter struct {
	client  *redis.Client
	window  time.Duration
	allowed int
}

func NewRedisRateLimiter(client *redis.Client, rps float64, burst int, window time.Duration) *RedisRateLimiter {
	if window < time.Second {
		window = time.Second
	}
	return &RedisRateLimiter{
		client:  client,
		window:  window,
		allowed: int(rps*window.Seconds()) + burst,
	}
}

func (rl *RedisRateLimiter) Middleware(route string) gin.HandlerFunc {
	windowSeconds := int64(rl.window / time.Second)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		bucket := time.Now().Unix() / windowSeconds
		key := fmt.Sprintf("devblog:rl:%s:%s:%d", route, ip, bucket)

		ctx := c.Request.Context()
		cnt, err := rl.client.Incr(ctx, key).Result()
		if err != nil {
			logger.Errorf("rate limit: redis incr %s: %v", key, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Rate limit check failed"})
			return
		}
		if cnt == 1 {
			_ = rl.client.Expire(ctx, key, rl.window+time.Second).Err()
		}
		if cnt > int64(rl.allowed) {
			metrics.RateLimitRejected.WithLabelValues(route).Inc()
			c.Header("Retry-After", strconv.FormatInt(windowSeconds, 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		c.Next()
	}
}

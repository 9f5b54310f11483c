package middleware

import (
	"net/http"
	"sync"

	"devblog/pkg/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per client IP.
type RateLimiter struct {
	rps      float64
	burst    int
	limiters sync.Map // map[string]*rate.Limiter
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{rps: rps, burst: burst}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	if v, ok := rl.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}
	v, _ := rl.limiters.LoadOrStore(key, rate.NewLimiter(rate.Limit(rl.rps), rl.burst))
	return v.(*rate.Limiter)
}

// Middleware rejects requests over the limit with 429. route labels the metric.
func (rl *RateLimiter) Middleware(route string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !rl.limiter(ip).Allow() {
			metrics.RateLimitRejected.WithLabelValues(route).Inc()
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		c.Next()
	}
}

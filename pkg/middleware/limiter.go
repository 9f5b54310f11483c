package middleware

import "github.com/gin-gonic/gin"

// Limiter produces rate limiting middleware; route labels its metrics.
type Limiter interface {
	Middleware(route string) gin.HandlerFunc
}

var (
	_ Limiter = (*RateLimiter)(nil)
	_ Limiter = (*RedisRateLimiter)(nil)
)

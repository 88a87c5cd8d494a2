// Simple per-IP rate limit middleware for gin (N requests per window).
package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type rateLimiter struct {
	mu     sync.Mutex
	users  map[string][]time.Time
	limit  int
	window time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		users:  make(map[string][]time.Time),
		limit:  limit,
		window: window,
	}
}

func (rl *rateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()
		rl.mu.Lock()
		times := rl.users[ip]
		// Keep only hits inside the window
		var filtered []time.Time
		for _, t := range times {
			if now.Sub(t) < rl.window {
				filtered = append(filtered, t)
			}
		}
		if len(filtered) >= rl.limit {
			rl.mu.Unlock()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, retry later"})
			return
		}
		filtered = append(filtered, now)
		rl.users[ip] = filtered
		rl.mu.Unlock()
		c.Next()
	}
}

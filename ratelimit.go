package main

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiter hands out one token bucket per client key. Keys are remote
// IPs; limiters are created lazily and kept for the process lifetime.
type clientLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
	return &clientLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

func (cl *clientLimiter) get(key string) *rate.Limiter {
	cl.mu.RLock()
	limiter, exists := cl.limiters[key]
	cl.mu.RUnlock()
	if exists {
		return limiter
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()
	// Double-check in case another goroutine created it.
	if limiter, exists := cl.limiters[key]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(cl.limit, cl.burst)
	cl.limiters[key] = limiter
	return limiter
}

func rateLimitMiddleware(cl *clientLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cl.get(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}

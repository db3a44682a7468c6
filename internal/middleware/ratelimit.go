package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/schoolcrm-backend/internal/config"
	"github.com/stemsi/schoolcrm-backend/internal/response"
)

// RateLimiter implements a simple per-client token bucket rate limiter.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rate      int           // Tokens per interval
	interval  time.Duration // Refill interval
	lastSweep time.Time
	now       func() time.Time
}

type visitor struct {
	tokens   int
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter (e.g., 30 requests per minute).
func NewRateLimiter(rate int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		interval: interval,
		now:      time.Now,
	}
}

// Middleware returns a Gin middleware that rate-limits requests per route and IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.rate <= 0 {
			c.Next()
			return
		}

		key := config.CacheKey.RateLimitKey(c.FullPath(), c.ClientIP())
		if !rl.allow(key) {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{tokens: rl.rate, lastSeen: now}
		rl.visitors[key] = v
	}

	// Refill tokens based on elapsed time.
	refill := int(now.Sub(v.lastSeen)/rl.interval) * rl.rate
	if refill > 0 {
		v.tokens += refill
		if v.tokens > rl.rate {
			v.tokens = rl.rate
		}
		v.lastSeen = now
	}

	if v.tokens <= 0 {
		return false
	}
	v.tokens--
	return true
}

// sweep drops idle visitors at most once per interval. Callers hold mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.interval {
		return
	}
	rl.lastSweep = now
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > 3*rl.interval {
			delete(rl.visitors, key)
		}
	}
}

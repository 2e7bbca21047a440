package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/JoseManuelPR/aduanas-app-sub001/backend/config"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RateLimiter counts requests per key in fixed windows
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	rate    int           // requests per window
	period  time.Duration // window length
	now     func() time.Time
}

type window struct {
	start time.Time
	count int
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(rate int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		rate:    rate,
		period:  period,
		now:     time.Now,
	}
}

// Allow records a request for key. When the key is over its limit it
// returns false and the time left until its window resets.
func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.period {
		if len(l.windows) > 10000 {
			l.sweep(now)
		}
		w = &window{start: now}
		l.windows[key] = w
	}

	if w.count >= l.rate {
		return false, w.start.Add(l.period).Sub(now)
	}
	w.count++
	return true, 0
}

// Must be called with lock held
func (l *RateLimiter) sweep(now time.Time) {
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.period {
			delete(l.windows, key)
		}
	}
}

// RateLimit limits requests per caller. Authenticated requests are counted
// per username, anonymous ones per client IP.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	limiter := NewRateLimiter(cfg.Requests, time.Duration(cfg.WindowSeconds)*time.Second)

	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if username := GetUsername(c); username != "" {
			key = "user:" + username
		}

		ok, retryAfter := limiter.Allow(key)
		if !ok {
			logger.Warn(c.Request.Context(), "rate limit exceeded", "key", key)

			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}

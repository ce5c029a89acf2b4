package api

import (
	"alcyxob/gym-system/internal/apperr"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// LoginRateLimiter throttles requests per client IP.
type LoginRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginRateLimiter allows perMinute requests per IP with the given burst.
func NewLoginRateLimiter(perMinute, burst int) *LoginRateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 1
	}
	return &LoginRateLimiter{
		limiters: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		ttl:      10 * time.Minute,
	}
}

func (l *LoginRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	v, ok := l.limiters[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = v
	}
	v.lastSeen = now

	// Drop idle visitors so the map does not grow forever.
	for key, other := range l.limiters {
		if now.Sub(other.lastSeen) > l.ttl {
			delete(l.limiters, key)
		}
	}
	return v.limiter.Allow()
}

// Middleware rejects requests over the limit with 429.
func (l *LoginRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			log.Warn().Str("ip", c.ClientIP()).Msg("too many login attempts")
			abortWithError(c, apperr.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

package middlewares

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/parlor-billing/utils"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	ips   map[string]*client
	mu    sync.Mutex
	now   func() time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rps:   rate.Limit(rps),
		burst: burst,
		ips:   make(map[string]*client),
		now:   time.Now,
	}
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for k, cl := range rl.ips {
		if now.Sub(cl.lastSeen) > limiterIdleTTL {
			delete(rl.ips, k)
		}
	}

	cl, ok := rl.ips[ip]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.ips[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			utils.RespondErrorCode(c, http.StatusTooManyRequests, "rate_limited", errors.New("too many requests"))
			c.Abort()
			return
		}
		c.Next()
	}
}

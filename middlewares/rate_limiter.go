package middlewares

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/tomdewit/bartab-app/utils"
)

// RateLimiter hands out one token bucket per client IP, so one noisy
// client cannot starve the others.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu  sync.Mutex
	ips map[string]*rate.Limiter
}

func NewRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		limit: limit,
		burst: burst,
		ips:   make(map[string]*rate.Limiter),
	}
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.ips[ip]
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.ips[ip] = limiter
	}
	return limiter
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			utils.RespondError(c, http.StatusTooManyRequests, errors.New("too many requests, try again later"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// NewStrictRateLimiter guards the register/login endpoints with a tight
// per-IP budget.
func NewStrictRateLimiter() gin.HandlerFunc {
	return NewRateLimiter(rate.Every(time.Minute/5), 5).RateLimit()
}

// NewAPIRateLimiter covers the authenticated routes with a budget generous
// enough for normal interactive use.
func NewAPIRateLimiter() gin.HandlerFunc {
	return NewRateLimiter(rate.Limit(20), 40).RateLimit()
}

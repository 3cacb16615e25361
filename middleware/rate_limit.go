package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/cppla/folio/utils"
)

const limiterIdleTTL = 5 * time.Minute

type rateLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

// ipLimiters hands out one token bucket per client IP.
type ipLimiters struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*rateLimiter
}

func newIPLimiters(perMinute int) *ipLimiters {
	perMinute = max(perMinute, 1)
	return &ipLimiters{
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    max(perMinute/2, 1),
		limiters: map[string]*rateLimiter{},
	}
}

func (l *ipLimiters) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for k, rl := range l.limiters {
		if now.After(rl.expires) {
			delete(l.limiters, k)
		}
	}

	rl, ok := l.limiters[key]
	if !ok {
		rl = &rateLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = rl
	}
	rl.expires = now.Add(limiterIdleTTL)
	return rl.limiter.Allow()
}

// RateLimitMiddleware applies a simple IP based rate limiter using a token bucket.
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	limiters := newIPLimiters(perMinute)

	return func(ctx *gin.Context) {
		if !limiters.allow(ctx.ClientIP()) {
			utils.Error(ctx, http.StatusTooManyRequests, 42901, "rate limit exceeded")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

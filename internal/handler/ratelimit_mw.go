package handler

import (
	"net/http"
	"sync"

	"github.com/BloggingApp/blog-client/internal/dto"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	authAttemptsPerSecond = 0.2
	authAttemptsBurst     = 5
)

// keyedLimiter keeps one token bucket per key.
type keyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newKeyedLimiter(rps float64, burst int) *keyedLimiter {
	return &keyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

func (l *keyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}

func (h *Handler) rateLimitMiddleware(c *gin.Context) {
	if !h.authLimiter.Allow(c.ClientIP()) {
		h.logger.Sugar().Warnf("rate limited %s on %s", c.ClientIP(), c.FullPath())
		c.JSON(http.StatusTooManyRequests, dto.NewBasicResponse(false, errTooManyRequests.Error()))
		c.Abort()
		return
	}

	c.Next()
}

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"maison-storefront/internal/auth"
	"maison-storefront/internal/logger"
	"maison-storefront/internal/metrics"
	"maison-storefront/internal/notice"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Rate Limit Tiers
const (
	// Checkout / buy-now / payment webhook (Strict)
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// General (Default)
	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	// Internal / trusted services
	limitInternal = rate.Limit(100)
	burstInternal = 200
)

const visitorIdleTTL = 3 * time.Minute

var strictPaths = map[string]bool{
	"/checkout":        true,
	"/buy-now":         true,
	"/webhook/payment": true,
}

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per identity and tier.
type Limiter struct {
	internalKey string

	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time

	rejected metrics.Counter
}

func NewLimiter(internalKey string) *Limiter {
	return &Limiter{
		internalKey: internalKey,
		visitors:    make(map[string]*visitor),
		now:         time.Now,
	}
}

// Run evicts idle visitors every minute until ctx is done.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evicted := l.cleanup()
			logger.L().Debug("limiter sweep",
				zap.Int("evicted", evicted),
				zap.Uint64("rejected_total", l.Rejected()),
			)
		}
	}
}

func (l *Limiter) cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for key, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > visitorIdleTTL {
			delete(l.visitors, key)
			evicted++
		}
	}
	return evicted
}

// Rejected is the number of requests answered with 429 so far.
func (l *Limiter) Rejected() uint64 {
	return l.rejected.Load()
}

// getVisitor retrieves or creates a rate limiter for the given key.
func (l *Limiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		l.visitors[key] = &visitor{limiter, l.now()}
		return limiter
	}

	v.lastSeen = l.now()
	return v.limiter
}

// Middleware checks if the request is allowed by the rate limiter.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Determine Rate Tier
		limit, burst, tier := l.resolveRateTier(c.Request)

		// 2. Determine Identity Key, user before device before IP
		var identity string
		if userID, ok := auth.UserIDFrom(c.Request.Context()); ok {
			identity = "user:" + userID
		} else if deviceID := c.GetHeader("X-Device-ID"); deviceID != "" {
			identity = "device:" + deviceID
		} else {
			identity = "ip:" + c.ClientIP()
		}

		// 3. Separate quotas per tier, e.g. "user:1:strict"
		key := fmt.Sprintf("%s:%s", identity, tier)

		if !l.getVisitor(key, limit, burst).Allow() {
			l.rejected.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":  http.StatusText(http.StatusTooManyRequests),
				"notice": notice.Error("Too many requests", "Please wait a moment and try again."),
			})
			return
		}

		c.Next()
	}
}

// resolveRateTier determines which rate limit policy applies to the request.
func (l *Limiter) resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if l.internalKey != "" && r.Header.Get("X-Service-Auth") == l.internalKey {
		return limitInternal, burstInternal, "internal"
	}

	if r.Method == http.MethodPost && strictPaths[r.URL.Path] {
		return limitStrict, burstStrict, "strict"
	}

	return limitGeneral, burstGeneral, "general"
}

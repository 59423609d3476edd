package middleware

import (
	"sync"
	"time"

	"asset-dashboard-api/internal/config"
	apierrors "asset-dashboard-api/internal/errors"
	"asset-dashboard-api/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// visitorIdleTimeout is how long a client may stay silent before its
// limiter is dropped.
const visitorIdleTimeout = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Every statistic request
// can fan out into many upstream page fetches, so a single client is capped.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

// NewRateLimiter creates a limiter allowing cfg.PerSecond requests per second
// with bursts of cfg.Burst per client.
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(cfg.PerSecond),
		burst:    cfg.Burst,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// Middleware rejects requests over the limit with a 429.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.getVisitor(handlers.ClientIP(c)).Allow() {
				return handlers.SendError(c, apierrors.SystemRateLimitExceeded)
			}
			return next(c)
		}
	}
}

// StartCleanup drops idle visitors every interval until Stop is called.
func (rl *RateLimiter) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.cleanupVisitors()
			case <-rl.stop:
				return
			}
		}
	}()
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.limit, rl.burst)
		rl.visitors[ip] = &visitor{limiter: limiter, lastSeen: rl.now()}
		return limiter
	}

	v.lastSeen = rl.now()
	return v.limiter
}

func (rl *RateLimiter) cleanupVisitors() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for ip, v := range rl.visitors {
		if rl.now().Sub(v.lastSeen) > visitorIdleTimeout {
			delete(rl.visitors, ip)
			removed++
		}
	}
	return removed
}

package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
)

// RateLimitConfig defines the limit for a route or group. The manual
// refresh endpoint is the only data-mutating trigger, so it gets a tight
// per-IP budget.
type RateLimitConfig struct {
	Max    int                       // requests allowed per window
	Window time.Duration             // window length
	KeyFn  func(c fiber.Ctx) string  // rate-limit key (IP by default)
}

// KeyByIP keys the limit on the client address.
func KeyByIP(c fiber.Ctx) string {
	return c.IP()
}

type window struct {
	count int
	until time.Time
}

// RateLimiter is an in-memory fixed-window rate limiter.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	config  RateLimitConfig
}

// NewRateLimiter creates a rate limiter and starts its background cleanup.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFn == nil {
		cfg.KeyFn = KeyByIP
	}
	rl := &RateLimiter{
		windows: make(map[string]*window),
		config:  cfg,
	}
	go rl.cleanup()
	return rl
}

// Allow records one request for key and reports whether it fits the window.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[key]
	if !ok || now.After(w.until) {
		rl.windows[key] = &window{count: 1, until: now.Add(rl.config.Window)}
		return true
	}
	w.count++
	return w.count <= rl.config.Max
}

// Handler returns a Fiber middleware enforcing the limit.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		key := rl.config.KeyFn(c)
		if !rl.Allow(key) {
			rl.mu.Lock()
			retryAfter := 1
			if w, ok := rl.windows[key]; ok {
				retryAfter = int(time.Until(w.until).Seconds()) + 1
			}
			rl.mu.Unlock()
			c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			return ErrorResponse(c, fiber.StatusTooManyRequests, "RATE_LIMITED",
				fmt.Sprintf("Too many requests. Try again in %d seconds.", retryAfter))
		}
		return c.Next()
	}
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, w := range rl.windows {
			if now.After(w.until) {
				delete(rl.windows, key)
			}
		}
		rl.mu.Unlock()
	}
}

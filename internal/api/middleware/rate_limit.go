package middleware

import (
	"kumpisahko/internal/config"
	"kumpisahko/internal/models"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// rateLimitExempt lists path prefixes that are never rate limited
var rateLimitExempt = []string{"/swagger/", "/metrics"}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter implements per-client rate limiting using a token bucket
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	rate     rate.Limit
	burst    int
	requests int
	window   int
	idleTTL  time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewRateLimiter creates a rate limiter allowing cfg.Requests per cfg.Window seconds
// with bursts of cfg.Burst (cfg.Requests when unset)
func NewRateLimiter(cfg config.RateLimitConfig, logger zerolog.Logger) *RateLimiter {
	burst := cfg.Burst
	if burst <= 0 {
		burst = cfg.Requests
	}

	return &RateLimiter{
		clients:  make(map[string]*clientLimiter),
		rate:     rate.Every(time.Duration(cfg.Window) * time.Second / time.Duration(cfg.Requests)),
		burst:    burst,
		requests: cfg.Requests,
		window:   cfg.Window,
		idleTTL:  time.Hour,
		logger:   logger,
		now:      time.Now,
	}
}

// getLimiter returns the limiter of the given client, creating it on first use
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	client, ok := rl.clients[key]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[key] = client
	}
	client.lastSeen = now
	return client.limiter
}

// Sweep drops limiters of clients idle for longer than the idle TTL
func (rl *RateLimiter) Sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.idleTTL)
	removed := 0
	for key, client := range rl.clients {
		if client.lastSeen.Before(cutoff) {
			delete(rl.clients, key)
			removed++
		}
	}
	return removed
}

// Run sweeps idle clients every interval until done is closed
func (rl *RateLimiter) Run(interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if n := rl.Sweep(); n > 0 {
				rl.logger.Debug().Int("clients", n).Msg("rate limiter swept idle clients")
			}
		}
	}
}

func isRateLimitExempt(path string) bool {
	for _, prefix := range rateLimitExempt {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Middleware returns a Gin middleware function that implements rate limiting
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isRateLimitExempt(c.Request.URL.Path) {
			c.Next()
			return
		}

		limiter := rl.getLimiter(c.ClientIP())
		now := rl.now()
		limit := strconv.Itoa(rl.requests)

		r := limiter.ReserveN(now, 1)
		if delay := r.DelayFrom(now); !r.OK() || delay > 0 {
			r.CancelAt(now)

			retryAfter := int(delay.Seconds())
			if !r.OK() || retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Limit", limit)
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", strconv.FormatInt(now.Add(delay).Unix(), 10))
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			rl.logger.Warn().Str("ip", c.ClientIP()).Str("path", c.Request.URL.Path).Msg("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{Error: "rate limit exceeded"})
			return
		}

		remaining := int(limiter.TokensAt(now))
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(now.Add(time.Duration(rl.window)*time.Second).Unix(), 10))

		c.Next()
	}
}

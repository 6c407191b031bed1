package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CoreDX1/File-Explorer-2/internal/core/port"
)

const (
	rateLimitProblemType  = "https://file-explorer.example.com/errors/rate-limit-exceeded"
	rateLimitProblemTitle = "Rate Limit Exceeded"
)

// IdentifierFunc extracts the identifier used to scope rate limits (e.g., client IP).
type IdentifierFunc func(*gin.Context) (string, bool)

// RateLimitRule configures the sliding-window limit of a single route.
type RateLimitRule struct {
	Name       string
	Limit      int
	Window     time.Duration
	Identifier IdentifierFunc
}

// RateLimiter enforces a sliding-window rule backed by a RateLimitStore.
// Store failures fail open: the endpoint must stay usable when Redis is
// down, the window just stops being enforced.
type RateLimiter struct {
	store  port.RateLimitStore
	logger *zap.Logger
	now    func() time.Time
}

// ProblemDetails represents an RFC 9457 compatible error payload for rate limits.
type ProblemDetails struct {
	Type       string `json:"type"`
	Title      string `json:"title"`
	Status     int    `json:"status"`
	Detail     string `json:"detail"`
	Instance   string `json:"instance"`
	RetryAfter int    `json:"retry_after"`
	TraceID    string `json:"trace_id,omitempty"`
}

// NewRateLimiter builds a reusable rate limiter middleware helper.
func NewRateLimiter(store port.RateLimitStore, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RateLimiter{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock allows injection of a custom clock (primarily for testing).
func (rl *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	if now != nil {
		rl.now = now
	}
	return rl
}

// ClientIPIdentifier builds an IdentifierFunc using the request's client IP.
func ClientIPIdentifier() IdentifierFunc {
	return func(c *gin.Context) (string, bool) {
		ip := c.ClientIP()
		if ip == "" {
			return "", false
		}
		return ip, true
	}
}

// RateLimit returns a Gin middleware enforcing the rule on each request.
// The window resets relative to the oldest surviving attempt, so a blocked
// client sees Retry-After shrink as its old attempts age out.
func (rl *RateLimiter) RateLimit(rule RateLimitRule) gin.HandlerFunc {
	if rl.store == nil || rule.Identifier == nil || rule.Limit <= 0 || rule.Window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if rule.Name == "" {
		rule.Name = "default"
	}

	return func(c *gin.Context) {
		identifier, ok := rule.Identifier(c)
		if !ok || identifier == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		now := rl.now()
		key := rule.Name + ":" + identifier

		win, err := rl.store.ObserveWindow(ctx, key, rule.Window, now)
		if err != nil {
			rl.logger.Warn("rate limit check failed",
				zap.String("rule", rule.Name),
				zap.String("identifier", identifier),
				zap.Error(err),
			)
			c.Next()
			return
		}

		reset := now.Add(rule.Window)
		if !win.Oldest.IsZero() {
			reset = win.Oldest.Add(rule.Window)
		}

		if win.Count >= rule.Limit {
			rl.block(c, rule, reset, now)
			return
		}

		// Counting the attempt before the handler runs means a failed
		// request still burns budget, which is the point for auth routes.
		if err := rl.store.RecordAttempt(ctx, key, now, 2*rule.Window); err != nil {
			rl.logger.Warn("rate limit record failed",
				zap.String("rule", rule.Name),
				zap.String("identifier", identifier),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if win.Count == 0 {
			reset = now.Add(rule.Window)
		}
		setRateLimitHeaders(c, rule.Limit, rule.Limit-win.Count-1, reset)
		c.Next()
	}
}

func (rl *RateLimiter) block(c *gin.Context, rule RateLimitRule, reset, now time.Time) {
	retrySeconds := int(math.Ceil(reset.Sub(now).Seconds()))
	if retrySeconds < 0 {
		retrySeconds = 0
	}

	setRateLimitHeaders(c, rule.Limit, 0, reset)
	c.Writer.Header().Set("Retry-After", strconv.Itoa(retrySeconds))

	instance := c.FullPath()
	if instance == "" {
		instance = c.Request.URL.Path
	}

	c.AbortWithStatusJSON(http.StatusTooManyRequests, ProblemDetails{
		Type:       rateLimitProblemType,
		Title:      rateLimitProblemTitle,
		Status:     http.StatusTooManyRequests,
		Detail:     fmt.Sprintf("Too many requests. Try again in %d seconds.", retrySeconds),
		Instance:   instance,
		RetryAfter: retrySeconds,
		TraceID:    GetTraceID(c),
	})
}

func setRateLimitHeaders(c *gin.Context, limit, remaining int, reset time.Time) {
	if remaining < 0 {
		remaining = 0
	}
	headers := c.Writer.Header()
	headers.Set("X-RateLimit-Limit", strconv.Itoa(limit))
	headers.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	headers.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
}

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"

	"github.com/CoreDX1/File-Explorer-2/internal/core/port"
)

type fakeRateLimitStore struct {
	window     port.AttemptWindow
	observeErr error
	recordErr  error

	observedKeys []string
	recordedKey  string
	recordedTTL  time.Duration
	recordCalls  int
}

func (f *fakeRateLimitStore) ObserveWindow(ctx context.Context, key string, window time.Duration, now time.Time) (port.AttemptWindow, error) {
	f.observedKeys = append(f.observedKeys, key)
	return f.window, f.observeErr
}

func (f *fakeRateLimitStore) RecordAttempt(ctx context.Context, key string, now time.Time, ttl time.Duration) error {
	f.recordedKey = key
	f.recordedTTL = ttl
	f.recordCalls++
	return f.recordErr
}

func newLimitedRouter(limiter *RateLimiter, rule RateLimitRule) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(limiter.RateLimit(rule))
	router.POST("/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func staticIdentifier(id string) IdentifierFunc {
	return func(*gin.Context) (string, bool) { return id, true }
}

func TestRateLimitAllowsBelowLimit(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	oldest := now.Add(-20 * time.Second)

	store := &fakeRateLimitStore{window: port.AttemptWindow{Count: 2, Oldest: oldest}}
	limiter := NewRateLimiter(store, zaptest.NewLogger(t)).WithClock(func() time.Time { return now })

	router := newLimitedRouter(limiter, RateLimitRule{
		Name:       "login",
		Limit:      5,
		Window:     time.Minute,
		Identifier: staticIdentifier("192.0.2.1"),
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if store.recordCalls != 1 {
		t.Fatalf("expected one recorded attempt, got %d", store.recordCalls)
	}
	if store.recordedKey != "login:192.0.2.1" {
		t.Fatalf("unexpected storage key %q", store.recordedKey)
	}
	if store.recordedTTL != 2*time.Minute {
		t.Fatalf("expected record TTL of twice the window, got %s", store.recordedTTL)
	}
	if got := rr.Header().Get("X-RateLimit-Limit"); got != "5" {
		t.Fatalf("expected limit header 5, got %q", got)
	}
	if got := rr.Header().Get("X-RateLimit-Remaining"); got != "2" {
		t.Fatalf("expected remaining header 2, got %q", got)
	}
	wantReset := oldest.Add(time.Minute).Unix()
	if got := rr.Header().Get("X-RateLimit-Reset"); got != strconv.FormatInt(wantReset, 10) {
		t.Fatalf("expected reset header %d, got %q", wantReset, got)
	}
}

func TestRateLimitFirstAttemptResetsFromNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	store := &fakeRateLimitStore{}
	limiter := NewRateLimiter(store, zaptest.NewLogger(t)).WithClock(func() time.Time { return now })

	router := newLimitedRouter(limiter, RateLimitRule{
		Name:       "login",
		Limit:      5,
		Window:     time.Minute,
		Identifier: staticIdentifier("192.0.2.1"),
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	wantReset := now.Add(time.Minute).Unix()
	if got := rr.Header().Get("X-RateLimit-Reset"); got != strconv.FormatInt(wantReset, 10) {
		t.Fatalf("expected reset header %d, got %q", wantReset, got)
	}
	if got := rr.Header().Get("X-RateLimit-Remaining"); got != "4" {
		t.Fatalf("expected remaining header 4, got %q", got)
	}
}

func TestRateLimitBlocksAtLimit(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	oldest := now.Add(-45 * time.Second)

	store := &fakeRateLimitStore{window: port.AttemptWindow{Count: 5, Oldest: oldest}}
	limiter := NewRateLimiter(store, zaptest.NewLogger(t)).WithClock(func() time.Time { return now })

	router := newLimitedRouter(limiter, RateLimitRule{
		Name:       "login",
		Limit:      5,
		Window:     time.Minute,
		Identifier: staticIdentifier("192.0.2.1"),
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
	if store.recordCalls != 0 {
		t.Fatalf("blocked request must not record an attempt, got %d", store.recordCalls)
	}
	if got := rr.Header().Get("Retry-After"); got != "15" {
		t.Fatalf("expected Retry-After 15, got %q", got)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rr.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to decode problem body: %v", err)
	}
	if problem.Status != http.StatusTooManyRequests {
		t.Fatalf("unexpected problem status %d", problem.Status)
	}
	if problem.RetryAfter != 15 {
		t.Fatalf("expected retry_after 15, got %d", problem.RetryAfter)
	}
}

func TestRateLimitFailsOpenOnStoreError(t *testing.T) {
	store := &fakeRateLimitStore{observeErr: errors.New("redis down")}
	limiter := NewRateLimiter(store, zaptest.NewLogger(t))

	router := newLimitedRouter(limiter, RateLimitRule{
		Name:       "login",
		Limit:      5,
		Window:     time.Minute,
		Identifier: staticIdentifier("192.0.2.1"),
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected fail-open 200, got %d", rr.Code)
	}
	if store.recordCalls != 0 {
		t.Fatalf("expected no recorded attempt on store error, got %d", store.recordCalls)
	}
}

func TestRateLimitFailsOpenOnRecordError(t *testing.T) {
	store := &fakeRateLimitStore{recordErr: errors.New("redis down")}
	limiter := NewRateLimiter(store, zaptest.NewLogger(t))

	router := newLimitedRouter(limiter, RateLimitRule{
		Name:       "login",
		Limit:      5,
		Window:     time.Minute,
		Identifier: staticIdentifier("192.0.2.1"),
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected fail-open 200, got %d", rr.Code)
	}
}

func TestRateLimitSkipsRuleWithoutIdentifier(t *testing.T) {
	store := &fakeRateLimitStore{window: port.AttemptWindow{Count: 100}}
	limiter := NewRateLimiter(store, zaptest.NewLogger(t))

	router := newLimitedRouter(limiter, RateLimitRule{
		Name:       "login",
		Limit:      1,
		Window:     time.Minute,
		Identifier: func(*gin.Context) (string, bool) { return "", false },
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 when no identifier resolves, got %d", rr.Code)
	}
	if len(store.observedKeys) != 0 {
		t.Fatalf("expected the store to stay untouched, observed %v", store.observedKeys)
	}
}

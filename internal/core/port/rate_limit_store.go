package port

import (
	"context"
	"time"
)

// AttemptWindow summarizes the live portion of a sliding window. Oldest is
// the zero time when no attempt remains inside the window.
type AttemptWindow struct {
	Count  int
	Oldest time.Time
}

// RateLimitStore persists sliding-window attempt history. ObserveWindow
// drops expired attempts and reports what survives in one round trip.
type RateLimitStore interface {
	ObserveWindow(ctx context.Context, key string, window time.Duration, now time.Time) (AttemptWindow, error)
	RecordAttempt(ctx context.Context, key string, now time.Time, ttl time.Duration) error
}

package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/CoreDX1/File-Explorer-2/internal/core/port"
)

// AttemptLog keeps per-key request history in a Redis sorted set. Scores
// are millisecond timestamps so they survive the float64 conversion that
// sorted-set scores go through; members are random so two attempts landing
// in the same millisecond are both kept.
type AttemptLog struct {
	client *redis.Client
	prefix string
}

// NewAttemptLog builds an attempt log writing under the given key prefix.
func NewAttemptLog(client *redis.Client, prefix string) *AttemptLog {
	return &AttemptLog{client: client, prefix: prefix}
}

// ObserveWindow expires attempts older than the window and reports what
// remains. The trim, the count and the oldest lookup run in a single
// MULTI/EXEC round trip so concurrent callers see a consistent snapshot.
func (l *AttemptLog) ObserveWindow(ctx context.Context, key string, window time.Duration, now time.Time) (port.AttemptWindow, error) {
	if window <= 0 {
		return port.AttemptWindow{}, fmt.Errorf("window must be positive, got %s", window)
	}

	storageKey := l.key(key)
	cutoff := strconv.FormatInt(now.Add(-window).UnixMilli(), 10)

	var (
		card   *redis.IntCmd
		oldest *redis.ZSliceCmd
	)
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, storageKey, "-inf", "("+cutoff)
		card = pipe.ZCard(ctx, storageKey)
		oldest = pipe.ZRangeWithScores(ctx, storageKey, 0, 0)
		return nil
	})
	if err != nil {
		return port.AttemptWindow{}, fmt.Errorf("observe window %q: %w", key, err)
	}

	win := port.AttemptWindow{Count: int(card.Val())}
	if entries := oldest.Val(); len(entries) > 0 {
		win.Oldest = time.UnixMilli(int64(entries[0].Score))
	}
	return win, nil
}

// RecordAttempt appends one attempt at the given instant and refreshes the
// key's expiry so abandoned identifiers clean themselves up.
func (l *AttemptLog) RecordAttempt(ctx context.Context, key string, now time.Time, ttl time.Duration) error {
	storageKey := l.key(key)

	_, err := l.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, storageKey, redis.Z{
			Score:  float64(now.UnixMilli()),
			Member: uuid.NewString(),
		})
		if ttl > 0 {
			pipe.Expire(ctx, storageKey, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record attempt %q: %w", key, err)
	}
	return nil
}

func (l *AttemptLog) key(key string) string {
	if l.prefix == "" {
		return key
	}
	return l.prefix + ":" + key
}

var _ port.RateLimitStore = (*AttemptLog)(nil)

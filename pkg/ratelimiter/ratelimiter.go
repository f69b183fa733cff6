package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Limiter is a per-user cooldown backed by Redis SETNX. A Limiter built with a
// nil client allows everything.
type Limiter struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Limiter {
	return &Limiter{rdb: rdb}
}

// RateLimitError tells the caller how long to wait.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	return e.Message
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

func key(userID uuid.UUID, action string) string {
	return fmt.Sprintf("rate_limit:user:%s:%s", userID.String(), action)
}

func (l *Limiter) enabled() bool {
	return l != nil && l.rdb != nil
}

// Allow sets the cooldown key if absent and reports whether the action may proceed.
func (l *Limiter) Allow(ctx context.Context, userID uuid.UUID, action string, limit time.Duration) (bool, error) {
	if !l.enabled() || limit <= 0 {
		return true, nil
	}

	wasSet, err := l.rdb.SetNX(ctx, key(userID, action), "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

func (l *Limiter) TTL(ctx context.Context, userID uuid.UUID, action string) (time.Duration, error) {
	if !l.enabled() {
		return 0, nil
	}
	return l.rdb.TTL(ctx, key(userID, action)).Result()
}

// Clear drops the cooldown, used to roll back when the guarded action failed.
func (l *Limiter) Clear(ctx context.Context, userID uuid.UUID, action string) error {
	if !l.enabled() {
		return nil
	}
	return l.rdb.Del(ctx, key(userID, action)).Err()
}

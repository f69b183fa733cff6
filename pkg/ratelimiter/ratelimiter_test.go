package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLimiter_DisabledWithoutRedis(t *testing.T) {
	l := New(nil)
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		allowed, err := l.Allow(context.Background(), userID, "comment", time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
	}

	ttl, err := l.TTL(context.Background(), userID, "comment")
	assert.NoError(t, err)
	assert.Zero(t, ttl)
	assert.NoError(t, l.Clear(context.Background(), userID, "comment"))
}

func TestLimiter_NilReceiver(t *testing.T) {
	var l *Limiter

	allowed, err := l.Allow(context.Background(), uuid.New(), "comment", time.Minute)
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestKeyFormat(t *testing.T) {
	id := uuid.MustParse("0190b6f4-7c1e-7000-8000-000000000001")
	assert.Equal(t, "rate_limit:user:0190b6f4-7c1e-7000-8000-000000000001:comment", key(id, "comment"))
}

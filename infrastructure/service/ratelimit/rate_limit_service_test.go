package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub/infrastructure/service/logger"
)

func TestNewRateLimitService_DisabledIsNoop(t *testing.T) {
	svc, err := NewRateLimitService(RateLimitConfig{Enabled: false}, logger.NewNopLogger())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		allowed, retry, err := svc.Allow(context.Background(), "k", 1, time.Second)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Zero(t, retry)
	}
	assert.NoError(t, svc.Close())
}

func TestNewRateLimitService_InvalidURL(t *testing.T) {
	_, err := NewRateLimitService(RateLimitConfig{Enabled: true, RedisURL: "://nope"}, logger.NewNopLogger())
	assert.Error(t, err)
}

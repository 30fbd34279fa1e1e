package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonprofitedge/assessments/internal/monitoring"
)

func newFallbackLimiter(config Config) *RateLimiter {
	redisClient := &RedisClient{enabled: false}
	return NewRateLimiter(redisClient, config, monitoring.NewMetrics())
}

func TestFallbackModeBlocksAfterBurst(t *testing.T) {
	limiter := newFallbackLimiter(Config{
		IPLimitPerMin:      3,
		SubmitLimitPerHour: 2,
		BurstMultiplier:    1,
	})

	ctx := context.Background()

	// Token bucket allows up to the burst capacity (minimum 5), then blocks.
	allowed := 0
	var blocked *Result
	for i := 0; i < 10; i++ {
		result, err := limiter.AllowIP(ctx, "192.0.2.1")
		require.NoError(t, err)
		if result.Allowed {
			allowed++
		} else if blocked == nil {
			blocked = result
		}
	}

	assert.GreaterOrEqual(t, allowed, 3)
	assert.LessOrEqual(t, allowed, 6)
	require.NotNil(t, blocked, "limit should eventually block")
	assert.Greater(t, blocked.RetryAfter.Seconds(), 0.0)
}

func TestFallbackModeKeysAreIndependent(t *testing.T) {
	limiter := newFallbackLimiter(DefaultConfig())
	ctx := context.Background()

	for _, raterID := range []string{"rater-1", "rater-2", "rater-3"} {
		result, err := limiter.AllowRater(ctx, raterID)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "first submission for %s should pass", raterID)
	}

	limiter.fallbackMutex.RLock()
	count := len(limiter.fallbackLimiters)
	limiter.fallbackMutex.RUnlock()
	assert.Equal(t, 3, count)
}

func TestGetStatsInFallbackMode(t *testing.T) {
	limiter := newFallbackLimiter(DefaultConfig())
	ctx := context.Background()

	_, err := limiter.AllowIP(ctx, "192.0.2.1")
	require.NoError(t, err)

	stats := limiter.GetStats()
	assert.False(t, stats["redis_enabled"].(bool))
	assert.Equal(t, 1, stats["fallback_limiters"].(int))
}

func TestConcurrentChecksAreSafe(t *testing.T) {
	limiter := newFallbackLimiter(Config{
		IPLimitPerMin:      100,
		SubmitLimitPerHour: 100,
		BurstMultiplier:    2,
	})
	ctx := context.Background()

	done := make(chan bool, 50)
	for i := 0; i < 50; i++ {
		go func() {
			for j := 0; j < 10; j++ {
				_, err := limiter.AllowIP(ctx, "192.0.2.1")
				assert.NoError(t, err)
			}
			done <- true
		}()
	}

	for i := 0; i < 50; i++ {
		<-done
	}
}

func TestCancelledContextStillWorksInFallback(t *testing.T) {
	limiter := newFallbackLimiter(DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := limiter.AllowRater(ctx, "rater-1")
	require.NoError(t, err)
	assert.NotNil(t, result)
}

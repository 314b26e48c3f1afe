package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowsWithinLimits(t *testing.T) {
	rl := NewRateLimiter(10, 100, 1000, 1<<20)

	for i := 0; i < 10; i++ {
		assert.NoError(t, rl.CheckRateLimit("client-a", 100))
	}
}

func TestRateLimiter_MinuteLimit(t *testing.T) {
	rl := NewRateLimiter(2, 100, 1000, 1<<20)

	require.NoError(t, rl.CheckRateLimit("client-a", 0))
	require.NoError(t, rl.CheckRateLimit("client-a", 0))

	err := rl.CheckRateLimit("client-a", 0)
	require.Error(t, err)

	var rle *RateLimitError
	require.ErrorAs(t, err, &rle)
	assert.Equal(t, "minute", rle.Type)
	assert.Equal(t, 2, rle.Limit)
	assert.Greater(t, rle.RetryAfter, time.Duration(0))
}

func TestRateLimiter_HourLimit(t *testing.T) {
	rl := NewRateLimiter(0, 2, 1000, 1<<20)

	require.NoError(t, rl.CheckRateLimit("client-a", 0))
	require.NoError(t, rl.CheckRateLimit("client-a", 0))

	err := rl.CheckRateLimit("client-a", 0)
	require.Error(t, err)

	var rle *RateLimitError
	require.ErrorAs(t, err, &rle)
	assert.Equal(t, "hour", rle.Type)
}

func TestRateLimiter_DailyRequestQuota(t *testing.T) {
	rl := NewRateLimiter(0, 0, 2, 1<<20)

	require.NoError(t, rl.CheckRateLimit("client-a", 0))
	require.NoError(t, rl.CheckRateLimit("client-a", 0))

	err := rl.CheckRateLimit("client-a", 0)
	require.Error(t, err)

	var qee *QuotaExceededError
	require.ErrorAs(t, err, &qee)
	assert.Equal(t, "requests", qee.Type)
	assert.Equal(t, int64(2), qee.Limit)
	assert.Equal(t, int64(2), qee.Used)
	assert.True(t, qee.Resets.After(time.Now()))
}

func TestRateLimiter_DailyDataQuota(t *testing.T) {
	rl := NewRateLimiter(0, 0, 0, 1000)

	require.NoError(t, rl.CheckRateLimit("client-a", 600))

	err := rl.CheckRateLimit("client-a", 600)
	require.Error(t, err)

	var qee *QuotaExceededError
	require.ErrorAs(t, err, &qee)
	assert.Equal(t, "data", qee.Type)
	assert.Equal(t, int64(1000), qee.Limit)
	assert.Equal(t, int64(600), qee.Used)
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, 100, 1000, 1<<20)

	require.NoError(t, rl.CheckRateLimit("client-a", 0))
	require.Error(t, rl.CheckRateLimit("client-a", 0))

	// A different client has its own counters.
	assert.NoError(t, rl.CheckRateLimit("client-b", 0))
}

func TestRateLimiter_ZeroLimitsDisableChecks(t *testing.T) {
	rl := NewRateLimiter(0, 0, 0, 0)

	for i := 0; i < 50; i++ {
		assert.NoError(t, rl.CheckRateLimit("client-a", 1<<30))
	}
}

func TestRateLimiter_GetUsage(t *testing.T) {
	rl := NewRateLimiter(10, 100, 1000, 1<<20)

	require.NoError(t, rl.CheckRateLimit("client-a", 250))
	require.NoError(t, rl.CheckRateLimit("client-a", 250))

	usage := rl.GetUsage("client-a")
	assert.Equal(t, 2, usage.requestsLastMinute)
	assert.Equal(t, 2, usage.requestsToday)
	assert.Equal(t, int64(500), usage.dataToday)

	// Unknown clients report empty usage.
	empty := rl.GetUsage("client-z")
	assert.Equal(t, 0, empty.requestsToday)
}

func TestRateLimiter_ConcurrentAccess(t *testing.T) {
	rl := NewRateLimiter(0, 0, 0, 0)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_ = rl.CheckRateLimit("shared", 1)
				_ = rl.GetUsage("shared")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	usage := rl.GetUsage("shared")
	assert.Equal(t, 800, usage.requestsToday)
}

func TestRateLimitError_Message(t *testing.T) {
	err := &RateLimitError{Type: "minute", Limit: 60, RetryAfter: 30 * time.Second}
	assert.Contains(t, err.Error(), "minute")
	assert.Contains(t, err.Error(), "60")
}

func TestQuotaExceededError_Message(t *testing.T) {
	err := &QuotaExceededError{Type: "data", Limit: 1000, Used: 999, Resets: time.Now()}
	assert.Contains(t, err.Error(), "data")
	assert.Contains(t, err.Error(), "999")
}

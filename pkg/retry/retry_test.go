package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     4 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestRetry_FirstAttemptSucceeds(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastConfig(), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_RecoversAfterFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastConfig(), func() error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	sentinel := errors.New("connection refused")
	calls := 0

	err := Retry(context.Background(), fastConfig(), func() error {
		calls++
		return sentinel
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel, "the last failure must stay inspectable")
	assert.Equal(t, 4, calls, "initial attempt plus MaxAttempts retries")
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Retry(ctx, fastConfig(), func() error {
		calls++
		return errors.New("connection refused")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls, "a dead context must not spend an attempt")
}

func TestConfig_DelayGrowsAndCaps(t *testing.T) {
	cfg := fastConfig()

	assert.Equal(t, time.Millisecond, cfg.delay(0))
	assert.Equal(t, 2*time.Millisecond, cfg.delay(1))
	assert.Equal(t, 4*time.Millisecond, cfg.delay(2))
	assert.Equal(t, cfg.MaxDelay, cfg.delay(10), "delay must stop at MaxDelay")
}

func TestConfig_JitterStaysBounded(t *testing.T) {
	cfg := fastConfig()
	cfg.Jitter = true

	for i := 0; i < 50; i++ {
		d := cfg.delay(1)
		assert.GreaterOrEqual(t, d, 1500*time.Microsecond)
		assert.LessOrEqual(t, d, 2500*time.Microsecond)
	}
}

// Package retry implements bounded exponential backoff for operations
// against dependencies that may be briefly unavailable, such as the
// datastore during startup.
package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Config bounds the backoff loop.
type Config struct {
	MaxAttempts  int           // retries after the initial attempt
	InitialDelay time.Duration // delay before the first retry
	MaxDelay     time.Duration // cap on the grown delay
	Multiplier   float64       // growth factor per attempt
	Jitter       bool          // randomize delays to avoid synchronized reconnects
}

// DefaultConfig returns the backoff used for datastore connections.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// Retry runs fn until it succeeds, the attempts are exhausted, or ctx is
// done. The last failure is wrapped in the returned error.
func Retry(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("retry cancelled: %w", err)
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled during wait: %w", ctx.Err())
		case <-time.After(cfg.delay(attempt)):
		}
	}

	return fmt.Errorf("max attempts (%d) exceeded: %w", cfg.MaxAttempts, lastErr)
}

// delay grows exponentially with the attempt number, capped at MaxDelay.
func (cfg Config) delay(attempt int) time.Duration {
	d := float64(cfg.InitialDelay) * math.Pow(cfg.Multiplier, float64(attempt))
	if d > float64(cfg.MaxDelay) {
		d = float64(cfg.MaxDelay)
	}
	if cfg.Jitter {
		// spread delays across +/-25% of the nominal value
		d *= 0.75 + 0.5*rand.Float64()
	}
	return time.Duration(d)
}

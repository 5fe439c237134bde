package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Config bounds a retry loop.
type Config struct {
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"5"`
	BaseDelay   time.Duration `env:"BASE_DELAY" envDefault:"10ms"`
	MaxDelay    time.Duration `env:"MAX_DELAY" envDefault:"500ms"`
	MaxJitter   time.Duration `env:"MAX_JITTER" envDefault:"10ms"`
}

// DefaultConfig returns the retry policy used for transaction conflicts.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 5,
		BaseDelay:   10 * time.Millisecond,
		MaxDelay:    500 * time.Millisecond,
		MaxJitter:   10 * time.Millisecond,
	}
}

// ExhaustedError is returned when every attempt failed with a retryable error.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Backoff returns the delay before the given zero-based retry, without jitter.
func Backoff(cfg Config, attempt int) time.Duration {
	delay := time.Duration(float64(cfg.BaseDelay) * math.Pow(2, float64(attempt)))
	if cfg.MaxDelay > 0 && (delay > cfg.MaxDelay || delay < 0) {
		return cfg.MaxDelay
	}
	return delay
}

// Do calls fn until it succeeds, returns a non-retryable error, the context ends,
// or MaxAttempts calls have failed. The attempt number passed to fn starts at 1.
func Do(ctx context.Context, cfg Config, retryable func(error) bool, fn func(ctx context.Context, attempt int) error) error {
	attempts := max(cfg.MaxAttempts, 1)

	var err error
	for i := range attempts {
		if err = fn(ctx, i+1); err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}

		delay := Backoff(cfg, i)
		if cfg.MaxJitter > 0 {
			delay += time.Duration(rand.Int64N(int64(cfg.MaxJitter)))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return &ExhaustedError{Attempts: attempts, Err: err}
}

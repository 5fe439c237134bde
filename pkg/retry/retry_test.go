package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errConflict = errors.New("conflict")

func isConflict(err error) bool { return errors.Is(err, errConflict) }

func fastConfig(attempts int) Config {
	return Config{MaxAttempts: attempts, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestDo(t *testing.T) {
	testCases := []struct {
		name         string
		failures     int
		failWith     error
		maxAttempts  int
		wantCalls    int
		assertResult func(t *testing.T, err error)
	}{
		{
			name:        "succeeds first time",
			maxAttempts: 3,
			wantCalls:   1,
			assertResult: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:        "succeeds after conflicts",
			failures:    2,
			failWith:    errConflict,
			maxAttempts: 3,
			wantCalls:   3,
			assertResult: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:        "exhausted",
			failures:    10,
			failWith:    errConflict,
			maxAttempts: 3,
			wantCalls:   3,
			assertResult: func(t *testing.T, err error) {
				var exhausted *ExhaustedError
				require.ErrorAs(t, err, &exhausted)
				assert.Equal(t, 3, exhausted.Attempts)
				assert.ErrorIs(t, err, errConflict)
			},
		},
		{
			name:        "non retryable stops immediately",
			failures:    10,
			failWith:    errors.New("validation"),
			maxAttempts: 3,
			wantCalls:   1,
			assertResult: func(t *testing.T, err error) {
				assert.EqualError(t, err, "validation")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			err := Do(context.Background(), fastConfig(tc.maxAttempts), isConflict, func(ctx context.Context, attempt int) error {
				calls++
				assert.Equal(t, calls, attempt)
				if calls <= tc.failures {
					return tc.failWith
				}
				return nil
			})
			assert.Equal(t, tc.wantCalls, calls)
			tc.assertResult(t, err)
		})
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := Config{MaxAttempts: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}

	calls := 0
	err := Do(ctx, cfg, isConflict, func(ctx context.Context, attempt int) error {
		calls++
		cancel()
		return errConflict
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestBackoff(t *testing.T) {
	cfg := Config{BaseDelay: 10 * time.Millisecond, MaxDelay: 50 * time.Millisecond}

	assert.Equal(t, 10*time.Millisecond, Backoff(cfg, 0))
	assert.Equal(t, 20*time.Millisecond, Backoff(cfg, 1))
	assert.Equal(t, 40*time.Millisecond, Backoff(cfg, 2))
	assert.Equal(t, 50*time.Millisecond, Backoff(cfg, 3))
	assert.Equal(t, 50*time.Millisecond, Backoff(cfg, 60))
}

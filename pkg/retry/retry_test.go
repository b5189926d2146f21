package retry_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toybox/storefront/pkg/retry"
)

var errFlaky = errors.New("flaky")

func TestDoWithResult(t *testing.T) {
	cfg := retry.Config{
		MaxAttempts: 3,
		Backoff:     retry.ConstantBackoff(time.Millisecond),
	}

	t.Run("SucceedsAfterRetries", func(t *testing.T) {
		calls := 0
		got, err := retry.DoWithResult(t.Context(), cfg, func() (int, error) {
			calls++
			if calls < 3 {
				return 0, errFlaky
			}
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		calls := 0
		_, err := retry.DoWithResult(t.Context(), cfg, func() (int, error) {
			calls++
			return 0, errFlaky
		})
		assert.ErrorIs(t, err, errFlaky)
		assert.Equal(t, 3, calls)
	})

	t.Run("ShouldRetryDeclines", func(t *testing.T) {
		declineAll := cfg
		declineAll.ShouldRetry = func(error) bool { return false }

		calls := 0
		_, err := retry.DoWithResult(t.Context(), declineAll, func() (int, error) {
			calls++
			return 0, errFlaky
		})
		assert.ErrorIs(t, err, errFlaky)
		assert.Equal(t, 1, calls)
	})

	t.Run("ZeroConfigRunsOnce", func(t *testing.T) {
		calls := 0
		err := retry.Do(t.Context(), retry.Config{}, func() error {
			calls++
			return errFlaky
		})
		assert.ErrorIs(t, err, errFlaky)
		assert.Equal(t, 1, calls)
	})
}

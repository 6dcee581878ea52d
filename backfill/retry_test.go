package backfill

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff(t *testing.T) {
	failUntil := func(n int, attempts *int) func() error {
		return func() error {
			*attempts++
			if *attempts < n {
				return errors.New("temporary")
			}
			return nil
		}
	}

	t.Run("first try", func(t *testing.T) {
		attempts := 0
		require.NoError(t, RetryWithBackoff(context.Background(), failUntil(1, &attempts), 3, time.Millisecond))
		assert.Equal(t, 1, attempts)
	})

	t.Run("eventual success", func(t *testing.T) {
		attempts := 0
		require.NoError(t, RetryWithBackoff(context.Background(), failUntil(3, &attempts), 5, time.Millisecond))
		assert.Equal(t, 3, attempts)
	})

	t.Run("all attempts fail", func(t *testing.T) {
		persistent := errors.New("persistent")
		attempts := 0
		err := RetryWithBackoff(context.Background(), func() error {
			attempts++
			return persistent
		}, 3, time.Millisecond)
		assert.Equal(t, persistent, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("invalid attempts", func(t *testing.T) {
		err := RetryWithBackoff(context.Background(), func() error { return nil }, 0, time.Millisecond)
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})

	t.Run("cancelled while waiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		attempts := 0
		err := RetryWithBackoff(ctx, func() error {
			attempts++
			cancel()
			return errors.New("fail")
		}, 5, time.Hour)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})

	t.Run("delay doubles", func(t *testing.T) {
		var stamps []time.Time
		err := RetryWithBackoff(context.Background(), func() error {
			stamps = append(stamps, time.Now())
			return errors.New("fail")
		}, 3, 20*time.Millisecond)
		require.Error(t, err)
		require.Len(t, stamps, 3)
		assert.GreaterOrEqual(t, stamps[1].Sub(stamps[0]), 20*time.Millisecond)
		assert.GreaterOrEqual(t, stamps[2].Sub(stamps[1]), 40*time.Millisecond)
	})
}

package myretry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	errTransient = fmt.Errorf("transient")
	errFatal     = fmt.Errorf("fatal")
)

func TestRetry(t *testing.T) {
	c := context.TODO()

	noSleep := func(c context.Context, d time.Duration) error { return nil }

	t.Run("Succeeds first time", func(t *testing.T) {
		calls := 0
		policy := Policy{MaxAttempts: 3, Delay: time.Second, Sleep: noSleep}

		err := policy.Do(c, func(c context.Context) error {
			calls++
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("Fails twice then succeeds", func(t *testing.T) {
		calls := 0
		policy := Policy{
			MaxAttempts: 3,
			Delay:       time.Second,
			IsRetryable: func(err error) bool { return err == errTransient },
			Sleep:       noSleep,
		}

		err := policy.Do(c, func(c context.Context) error {
			calls++
			if calls < 3 {
				return errTransient
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("Non-retryable error returned immediately", func(t *testing.T) {
		calls := 0
		policy := Policy{
			MaxAttempts: 3,
			Delay:       time.Second,
			IsRetryable: func(err error) bool { return err == errTransient },
			Sleep:       noSleep,
		}

		err := policy.Do(c, func(c context.Context) error {
			calls++
			return errFatal
		})

		assert.Equal(t, errFatal, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("Exhausted attempts return last error", func(t *testing.T) {
		calls := 0
		policy := Policy{
			MaxAttempts: 3,
			Delay:       time.Second,
			IsRetryable: func(err error) bool { return true },
			Sleep:       noSleep,
		}

		err := policy.Do(c, func(c context.Context) error {
			calls++
			return errTransient
		})

		assert.Equal(t, errTransient, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("Cancelled context stops retrying", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(c)
		cancel()

		calls := 0
		policy := Policy{
			MaxAttempts: 3,
			Delay:       time.Millisecond,
			IsRetryable: func(err error) bool { return true },
		}

		err := policy.Do(cancelled, func(c context.Context) error {
			calls++
			return errTransient
		})

		assert.Equal(t, errTransient, err)
		assert.Equal(t, 1, calls)
	})
}

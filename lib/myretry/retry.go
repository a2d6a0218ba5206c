package myretry

import (
	"context"
	"time"
)

// Policy retries an operation a bounded number of times with a fixed delay
// between attempts. Only errors for which IsRetryable returns true trigger
// another attempt; everything else is returned to the caller as-is.
type Policy struct {
	// MaxAttempts is the total number of attempts, the first one included.
	MaxAttempts int
	Delay       time.Duration
	IsRetryable func(err error) bool

	// Sleep can be overridden in tests. Nil means sleep for real.
	Sleep func(c context.Context, d time.Duration) error
}

func (p Policy) Do(c context.Context, f func(c context.Context) error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepWithContext
	}

	var err error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			sleepErr := sleep(c, p.Delay)
			if sleepErr != nil {
				return err
			}
		}

		err = f(c)
		if err == nil {
			return nil
		}

		if p.IsRetryable != nil && !p.IsRetryable(err) {
			return err
		}
	}

	return err
}

func sleepWithContext(c context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-c.Done():
		return c.Err()
	case <-timer.C:
		return nil
	}
}

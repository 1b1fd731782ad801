package publish

import (
	"context"
	"time"
)

// RetryPolicy retries a call a bounded number of times after a fixed delay,
// and only when the remote reported rate limiting.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
}

// DefaultRetryPolicy allows one retry after half a second.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 1, Delay: 500 * time.Millisecond}
}

// Do runs fn and retries it while it keeps failing with a rate-limit error
// and retries remain. The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, fn func(context.Context) error) error {
	err := fn(ctx)
	for attempt := 0; attempt < p.MaxRetries && IsRateLimited(err); attempt++ {
		if waitErr := sleep(ctx, p.Delay); waitErr != nil {
			return err
		}
		err = fn(ctx)
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

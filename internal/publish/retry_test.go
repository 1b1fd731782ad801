package publish

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy_Do(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 1, Delay: time.Millisecond}

	t.Run("success needs one call", func(t *testing.T) {
		calls := 0
		err := policy.Do(context.Background(), func(context.Context) error {
			calls++
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("rate limit retried once", func(t *testing.T) {
		calls := 0
		err := policy.Do(context.Background(), func(context.Context) error {
			calls++
			return rateLimited("ArchiveBlock")
		})
		assert.ErrorIs(t, err, ErrRateLimited)
		assert.Equal(t, 2, calls)
	})

	t.Run("other errors returned immediately", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		err := policy.Do(context.Background(), func(context.Context) error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context stops waiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		calls := 0
		slow := RetryPolicy{MaxRetries: 3, Delay: time.Hour}
		err := slow.Do(ctx, func(context.Context) error {
			calls++
			return rateLimited("DeleteBlock")
		})
		assert.ErrorIs(t, err, ErrRateLimited)
		assert.Equal(t, 1, calls)
	})
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	assert.Equal(t, 1, p.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, p.Delay)
}

func TestRemoteError(t *testing.T) {
	err := &RemoteError{Op: "AppendBlocks", Status: 429, Code: "rate_limited", Message: "slow down", Err: ErrRateLimited}
	assert.Equal(t, "AppendBlocks: status 429 (rate_limited): slow down", err.Error())
	assert.True(t, IsRateLimited(err))
	assert.False(t, IsRateLimited(errors.New("rate limited")))
}

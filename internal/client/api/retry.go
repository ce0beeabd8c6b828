package api

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// Execute runs op through the throttle. Rate-limited failures are retried
// up to the client's attempt limit with waits of 1s, 2s, 4s and so on;
// any other failure is returned immediately.
func Execute[T any](ctx context.Context, c *Client, op func(ctx context.Context) (T, error)) (T, error) {
	var (
		result  T
		attempt int
	)

	base := retry.WithMaxRetries(uint64(c.maxRetries-1), c.baseBackoff())
	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		next, stop := base.Next()
		if !stop {
			c.logger.Warn("rate limited, retrying", "attempt", attempt, "wait", next)
		}
		return next, stop
	})

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		if err := c.wait(ctx); err != nil {
			return err
		}

		v, err := op(ctx)
		if err != nil {
			if Classify(err) == CategoryRateLimited {
				return retry.RetryableError(err)
			}
			return err
		}

		result = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}

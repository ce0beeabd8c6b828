package api

import (
	"context"
	"time"
)

// wait blocks until the next dispatch slot. Slots are reserved under mu,
// so concurrent callers get increasing slots at least the minimum
// interval apart; the sleep itself happens outside the lock.
func (c *Client) wait(ctx context.Context) error {
	c.mu.Lock()
	now := c.now()
	r := c.limiter.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	c.lastDispatch = now.Add(delay)
	c.mu.Unlock()

	if delay <= 0 {
		return nil
	}

	c.logger.Debug("throttling request", "wait", delay)
	return c.sleep(ctx, delay)
}

// LastDispatch returns the time of the most recently reserved dispatch slot
func (c *Client) LastDispatch() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastDispatch
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

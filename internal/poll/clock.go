package poll

import (
	"context"
	"time"
)

// Clock drives live elapsed-duration displays on its own fixed interval,
// independent of any fetch interval. The tick callback recomputes durations
// against the latest known snapshot; the clock itself holds no state.
type Clock struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartClock ticks every interval (default one second) until stopped.
func StartClock(ctx context.Context, interval time.Duration, tick func(now time.Time)) *Clock {
	if interval <= 0 {
		interval = time.Second
	}
	ctx, cancel := context.WithCancel(ctx)
	c := &Clock{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(c.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tick(time.Now())
			}
		}
	}()

	return c
}

// Stop cancels the clock and waits for the loop to exit. No tick fires after
// Stop returns.
func (c *Clock) Stop() {
	c.cancel()
	<-c.done
}

// Package poll implements the recurring fetch-and-reconcile pattern behind
// every live view: slot grid, booking lists, and the admin dashboard. One
// poller owns one resource; it fetches immediately on start, then on a fixed
// interval, replacing the snapshot wholesale on success and keeping the prior
// snapshot on failure.
package poll

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/parkease/parking-console/internal/core/ports"
	"github.com/parkease/parking-console/internal/metrics"
)

const defaultInterval = 5 * time.Second

// Config parametrizes one Poller instance.
type Config[T any] struct {
	// Resource names the polled resource for logs and metrics.
	Resource string
	// Interval between fetches. Defaults to 5 seconds.
	Interval time.Duration
	// Fetch retrieves one snapshot. It must honour ctx cancellation.
	Fetch func(ctx context.Context) (T, error)
	// Reconcile replaces the consumer's snapshot. Called only from the
	// poller goroutine, never after Stop returns.
	Reconcile func(T)
	// Count reports the record count of a snapshot for the size gauge.
	// Optional.
	Count func(T) int
	// Notifier surfaces fetch failures. Consecutive failures produce a
	// single notification; a success re-arms it. Optional.
	Notifier ports.Notifier
	Logger   zerolog.Logger
}

type result[T any] struct {
	snapshot T
	err      error
}

// Poller runs one fetch-and-reconcile loop until stopped.
type Poller[T any] struct {
	cfg    Config[T]
	cancel context.CancelFunc
	done   chan struct{}
}

// Start launches the poll loop. The first fetch fires immediately, not after
// the first interval.
func Start[T any](ctx context.Context, cfg Config[T]) *Poller[T] {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	p := &Poller[T]{cfg: cfg, cancel: cancel, done: make(chan struct{})}
	go p.run(ctx)
	return p
}

// Stop cancels the schedule and waits for the loop to exit. After Stop
// returns, no reconcile call can happen; a fetch still in flight resolves
// into a buffered channel nobody reads and is discarded.
func (p *Poller[T]) Stop() {
	p.cancel()
	<-p.done
}

func (p *Poller[T]) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	// Capacity one: at most a single fetch is ever in flight, and a late
	// resolution after shutdown must not leak its goroutine.
	results := make(chan result[T], 1)
	inFlight := false
	errorShown := false

	launch := func() {
		inFlight = true
		go func() {
			start := time.Now()
			snapshot, err := p.cfg.Fetch(ctx)
			metrics.PollDuration.WithLabelValues(p.cfg.Resource).Observe(time.Since(start).Seconds())
			results <- result[T]{snapshot: snapshot, err: err}
		}()
	}

	launch()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if inFlight {
				// A fetch slower than the interval: skip the tick rather
				// than pile up concurrent requests.
				metrics.PollsTotal.WithLabelValues(p.cfg.Resource, "skipped").Inc()
				continue
			}
			launch()

		case res := <-results:
			inFlight = false
			if ctx.Err() != nil {
				return
			}
			if res.err != nil {
				metrics.PollsTotal.WithLabelValues(p.cfg.Resource, "error").Inc()
				p.cfg.Logger.Warn().Err(res.err).Str("resource", p.cfg.Resource).Msg("poll failed, keeping previous snapshot")
				if !errorShown {
					if p.cfg.Notifier != nil {
						p.cfg.Notifier.Error("failed to refresh " + p.cfg.Resource)
					}
					errorShown = true
				}
				continue
			}

			metrics.PollsTotal.WithLabelValues(p.cfg.Resource, "success").Inc()
			if p.cfg.Count != nil {
				metrics.SnapshotSize.WithLabelValues(p.cfg.Resource).Set(float64(p.cfg.Count(res.snapshot)))
			}
			errorShown = false
			p.cfg.Reconcile(res.snapshot)
		}
	}
}

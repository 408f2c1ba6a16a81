package poll

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type countingNotifier struct {
	mu     sync.Mutex
	errors []string
}

func (n *countingNotifier) Info(string) {}

func (n *countingNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.errors)
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not reached within %v", d)
}

func TestPoller_ImmediateFirstFetch(t *testing.T) {
	var reconciled atomic.Int32

	p := Start(context.Background(), Config[[]int]{
		Resource: "slots",
		Interval: time.Hour, // the first fetch must not wait for this
		Fetch:    func(context.Context) ([]int, error) { return []int{1, 2, 3}, nil },
		Reconcile: func([]int) {
			reconciled.Add(1)
		},
		Logger: zerolog.Nop(),
	})
	defer p.Stop()

	waitFor(t, time.Second, func() bool { return reconciled.Load() == 1 })
}

func TestPoller_FailureKeepsPriorSnapshotAndNotifiesOnce(t *testing.T) {
	var calls atomic.Int32
	var mu sync.Mutex
	var snapshot []string

	notifier := &countingNotifier{}
	p := Start(context.Background(), Config[[]string]{
		Resource: "bookings",
		Interval: 5 * time.Millisecond,
		Fetch: func(context.Context) ([]string, error) {
			if calls.Add(1) == 1 {
				return []string{"b1", "b2"}, nil
			}
			return nil, errors.New("backend down")
		},
		Reconcile: func(s []string) {
			mu.Lock()
			snapshot = s
			mu.Unlock()
		},
		Notifier: notifier,
		Logger:   zerolog.Nop(),
	})
	defer p.Stop()

	// Let the first success land, then at least five failed polls.
	waitFor(t, time.Second, func() bool { return calls.Load() >= 6 })

	mu.Lock()
	got := append([]string(nil), snapshot...)
	mu.Unlock()
	if len(got) != 2 || got[0] != "b1" || got[1] != "b2" {
		t.Fatalf("prior snapshot changed: %v", got)
	}
	if n := notifier.count(); n != 1 {
		t.Fatalf("got %d notifications for consecutive failures, want exactly 1", n)
	}
}

func TestPoller_SuccessRearmsErrorNotification(t *testing.T) {
	var calls atomic.Int32
	notifier := &countingNotifier{}

	// fail, fail, succeed, fail, fail... → two notifications total.
	p := Start(context.Background(), Config[int]{
		Resource: "report",
		Interval: 5 * time.Millisecond,
		Fetch: func(context.Context) (int, error) {
			if calls.Add(1) == 3 {
				return 42, nil
			}
			return 0, errors.New("flaky")
		},
		Reconcile: func(int) {},
		Notifier:  notifier,
		Logger:    zerolog.Nop(),
	})
	defer p.Stop()

	waitFor(t, time.Second, func() bool { return calls.Load() >= 6 })
	waitFor(t, time.Second, func() bool { return notifier.count() == 2 })
}

func TestPoller_StopDiscardsInFlightResult(t *testing.T) {
	release := make(chan struct{})
	var reconciled atomic.Int32

	p := Start(context.Background(), Config[int]{
		Resource: "slots",
		Interval: 5 * time.Millisecond,
		Fetch: func(context.Context) (int, error) {
			<-release
			return 7, nil
		},
		Reconcile: func(int) { reconciled.Add(1) },
		Logger:    zerolog.Nop(),
	})

	p.Stop()
	close(release) // in-flight fetch resolves after the consumer is gone

	time.Sleep(50 * time.Millisecond)
	if n := reconciled.Load(); n != 0 {
		t.Fatalf("reconcile ran %d times after Stop", n)
	}
}

func TestPoller_SkipsTickWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	var fetches atomic.Int32

	p := Start(context.Background(), Config[int]{
		Resource: "slots",
		Interval: 5 * time.Millisecond,
		Fetch: func(context.Context) (int, error) {
			fetches.Add(1)
			<-release
			return 0, nil
		},
		Reconcile: func(int) {},
		Logger:    zerolog.Nop(),
	})
	defer p.Stop()

	// Many intervals elapse while the first fetch is stuck; overlapping
	// ticks must be skipped, not queued.
	time.Sleep(60 * time.Millisecond)
	if n := fetches.Load(); n != 1 {
		t.Fatalf("launched %d concurrent fetches, want 1", n)
	}

	close(release)
	waitFor(t, time.Second, func() bool { return fetches.Load() >= 2 })
}

func TestClock_TicksAndStops(t *testing.T) {
	var ticks atomic.Int32
	c := StartClock(context.Background(), 5*time.Millisecond, func(time.Time) {
		ticks.Add(1)
	})

	waitFor(t, time.Second, func() bool { return ticks.Load() >= 3 })

	c.Stop()
	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	if ticks.Load() != after {
		t.Fatalf("clock ticked after Stop")
	}
}

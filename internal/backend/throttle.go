package backend

import (
	"context"
	"sync"
	"time"
)

// throttle hands out fetch slots at least interval apart. It is shared by
// every poller of a watcher so they never hit the data source in a burst.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{interval: interval}
}

// reserve books the next free slot and returns how long the caller must wait
// for it.
func (t *throttle) reserve() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	slot := t.next
	if slot.Before(now) {
		slot = now
	}
	t.next = slot.Add(t.interval)
	return slot.Sub(now)
}

// wait blocks until the caller's slot arrives. It returns ctx.Err() if the
// context ends first; the slot is still consumed.
func (t *throttle) wait(ctx context.Context) error {
	if t == nil || t.interval <= 0 {
		return ctx.Err()
	}
	delay := t.reserve()
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

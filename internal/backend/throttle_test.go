package backend

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(20 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	if err := th.wait(ctx); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	if err := th.wait(ctx); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected second wait to be delayed, took %s", elapsed)
	}
}

func TestThrottleSharedAcrossCallers(t *testing.T) {
	th := newThrottle(15 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = th.wait(ctx)
		}()
	}
	wg.Wait()
	if elapsed := time.Since(start); elapsed < 45*time.Millisecond {
		t.Fatalf("expected four callers to take three intervals, took %s", elapsed)
	}
}

func TestThrottleReturnsOnCancel(t *testing.T) {
	th := newThrottle(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	if err := th.wait(ctx); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	done := make(chan error, 1)
	go func() {
		done <- th.wait(ctx)
	}()
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("wait did not return after cancel")
	}
}

func TestThrottleDisabled(t *testing.T) {
	var nilThrottle *throttle
	ctx := context.Background()
	if err := nilThrottle.wait(ctx); err != nil {
		t.Fatalf("nil throttle: %v", err)
	}
	if err := newThrottle(0).wait(ctx); err != nil {
		t.Fatalf("zero throttle: %v", err)
	}
}

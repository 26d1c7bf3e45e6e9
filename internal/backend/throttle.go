package backend

import (
	"context"
	"sync"
	"time"
)

// pruneAfter bounds how many expired targets are kept before they are swept.
const pruneAfter = 256

// throttle spaces out fetches of the same target. Different targets do not
// delay each other, so switching presets stays responsive while repeated
// refreshes of one tree are held back.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next map[string]time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{interval: interval, next: map[string]time.Time{}}
}

// wait blocks until key may be fetched again. It reports false if ctx is
// done first.
func (t *throttle) wait(ctx context.Context, key string) bool {
	if t == nil || t.interval <= 0 {
		return ctx.Err() == nil
	}
	for {
		t.mu.Lock()
		now := time.Now()
		delay := t.next[key].Sub(now)
		if delay <= 0 {
			t.next[key] = now.Add(t.interval)
			t.prune(now)
			t.mu.Unlock()
			return true
		}
		t.mu.Unlock()
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
}

// prune drops targets whose slot has passed. Callers hold mu.
func (t *throttle) prune(now time.Time) {
	if len(t.next) <= pruneAfter {
		return
	}
	for key, at := range t.next {
		if !at.After(now) {
			delete(t.next, key)
		}
	}
}

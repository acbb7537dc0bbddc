package sim

import (
	"context"
	"sync"
	"time"
)

// throttle spaces successive battery drains at least interval apart so a
// backed-up ticker cannot empty the battery in a burst.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{interval: interval}
}

// wait blocks until the next slot opens and claims it. It returns false when
// ctx ends first.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil || t.interval <= 0 {
		return ctx.Err() == nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.last.IsZero() {
		if gap := t.interval - time.Since(t.last); gap > 0 {
			timer := time.NewTimer(gap)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return false
			case <-timer.C:
			}
		}
	}
	if ctx.Err() != nil {
		return false
	}
	t.last = time.Now()
	return true
}

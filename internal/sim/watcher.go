package sim

import (
	"context"
	"sync"
	"time"
)

const minDrainSpacing = 50 * time.Millisecond

// batteryWatcher drains the simulated battery at a fixed interval while the
// glasses are connected and worn.
type batteryWatcher struct {
	interval time.Duration
	drain    func() bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newBatteryWatcher(interval time.Duration, drain func() bool) *batteryWatcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &batteryWatcher{
		interval: interval,
		drain:    drain,
		ctx:      ctx,
		cancel:   cancel,
	}
	w.wg.Add(1)
	go w.poll()
	return w
}

// Stop cancels the watcher and waits for the poller to exit.
func (w *batteryWatcher) Stop() {
	if w == nil {
		return
	}
	w.cancel()
	w.wg.Wait()
}

func (w *batteryWatcher) poll() {
	defer w.wg.Done()

	throttle := newThrottle(minDrainSpacing)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !throttle.wait(w.ctx) {
				return
			}
			if !w.drain() {
				return
			}
		}
	}
}

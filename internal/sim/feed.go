package sim

import (
	"sync"

	"github.com/atomicstack/evenhub-control/internal/bridge"
)

const feedBuffer = 64

// feed fans values out to every live subscription.
type feed[T any] struct {
	mu     sync.Mutex
	subs   map[int]*subscriber[T]
	next   int
	closed bool
}

type subscriber[T any] struct {
	mu     sync.Mutex
	ch     chan T
	done   chan struct{}
	once   sync.Once
	closed bool
}

func (f *feed[T]) subscribe() *bridge.Subscription[T] {
	s := &subscriber[T]{ch: make(chan T, feedBuffer), done: make(chan struct{})}
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		s.close()
		return bridge.NewSubscription[T](s.ch, func() {})
	}
	if f.subs == nil {
		f.subs = make(map[int]*subscriber[T])
	}
	id := f.next
	f.next++
	f.subs[id] = s
	f.mu.Unlock()

	return bridge.NewSubscription[T](s.ch, func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
		s.close()
	})
}

// publish delivers v to each subscriber, blocking on full buffers until the
// subscriber drains or detaches.
func (f *feed[T]) publish(v T) int {
	f.mu.Lock()
	subs := make([]*subscriber[T], 0, len(f.subs))
	for _, s := range f.subs {
		subs = append(subs, s)
	}
	f.mu.Unlock()

	delivered := 0
	for _, s := range subs {
		if s.send(v) {
			delivered++
		}
	}
	return delivered
}

func (f *feed[T]) close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	subs := f.subs
	f.subs = nil
	f.mu.Unlock()
	for _, s := range subs {
		s.close()
	}
}

func (s *subscriber[T]) send(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- v:
		return true
	case <-s.done:
		return false
	}
}

func (s *subscriber[T]) close() {
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()
	})
}

package bridge

import "sync"

// Subscription is a cancellable event stream. The channel closes once the
// producer observes Close or shuts down.
type Subscription[T any] struct {
	events <-chan T
	once   sync.Once
	cancel func()
}

// NewSubscription pairs a channel with the function that detaches it.
func NewSubscription[T any](events <-chan T, cancel func()) *Subscription[T] {
	return &Subscription[T]{events: events, cancel: cancel}
}

// Events returns the delivery channel.
func (s *Subscription[T]) Events() <-chan T {
	if s == nil {
		return nil
	}
	return s.events
}

// Close detaches the subscription. Safe to call more than once.
func (s *Subscription[T]) Close() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

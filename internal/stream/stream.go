// Package stream provides a small multicast event stream used to wire
// position changes, trigger intents and panel values between components.
package stream

import "sync"

// Observable is the subscribe-only view of a stream.
type Observable[T any] interface {
	// Subscribe registers fn for every future emission. Past emissions are
	// not replayed.
	Subscribe(fn func(T)) *Subscription
}

// Subscription is a handle to a registered listener.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe stops delivery to the listener. Safe to call more than once
// and on a nil Subscription.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// Subject is a hot, replay-none, multicast stream. The zero value is ready
// to use.
type Subject[T any] struct {
	mu        sync.Mutex
	listeners map[uint64]func(T)
	order     []uint64
	next      uint64
	closed    bool
}

// NewSubject returns an empty Subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Subscribe registers fn. Subscribing to a completed subject returns an
// inert subscription.
func (s *Subject[T]) Subscribe(fn func(T)) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &Subscription{}
	}
	if s.listeners == nil {
		s.listeners = make(map[uint64]func(T))
	}
	id := s.next
	s.next++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	return &Subscription{cancel: func() { s.remove(id) }}
}

func (s *Subject[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.listeners[id]; !ok {
		return
	}
	delete(s.listeners, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Next delivers v to every current listener in subscription order.
// Listeners run outside the lock, so they may subscribe or unsubscribe.
func (s *Subject[T]) Next(v T) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	fns := make([]func(T), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Complete drops every listener and makes further Next calls no-ops.
func (s *Subject[T]) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.listeners = nil
	s.order = nil
}

// Closed reports whether Complete has been called.
func (s *Subject[T]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Len returns the number of live listeners.
func (s *Subject[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// AsObservable hides Next and Complete from consumers.
func (s *Subject[T]) AsObservable() Observable[T] {
	return readOnly[T]{s}
}

type readOnly[T any] struct{ s *Subject[T] }

func (r readOnly[T]) Subscribe(fn func(T)) *Subscription { return r.s.Subscribe(fn) }

// SubscribeWhile subscribes fn to src, dropping emissions once alive
// reports false. The first dropped emission also releases the subscription.
func SubscribeWhile[T any](src Observable[T], alive func() bool, fn func(T)) *Subscription {
	var sub *Subscription
	var mu sync.Mutex
	mu.Lock()
	defer mu.Unlock()
	sub = src.Subscribe(func(v T) {
		if !alive() {
			mu.Lock()
			s := sub
			mu.Unlock()
			s.Unsubscribe()
			return
		}
		fn(v)
	})
	return sub
}

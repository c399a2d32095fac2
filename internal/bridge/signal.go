package bridge

import "sync"

// Subscription identifies a handler connected to a Signal.
type Subscription uint64

// Signal is a host notification channel with connect/disconnect semantics.
// Handlers run on the emitting goroutine in connection order.
type Signal[T any] struct {
	mu       sync.Mutex
	next     Subscription
	handlers map[Subscription]func(T)
	order    []Subscription
}

// NewSignal returns a signal with no handlers.
func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{handlers: map[Subscription]func(T){}}
}

// Connect adds fn and returns the id that removes it.
func (s *Signal[T]) Connect(fn func(T)) Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handlers == nil {
		s.handlers = map[Subscription]func(T){}
	}
	s.next++
	id := s.next
	s.handlers[id] = fn
	s.order = append(s.order, id)
	return id
}

// Disconnect removes the handler; unknown ids are ignored.
func (s *Signal[T]) Disconnect(id Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.handlers[id]; !ok {
		return
	}
	delete(s.handlers, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Emit delivers payload to every connected handler.
func (s *Signal[T]) Emit(payload T) {
	s.mu.Lock()
	fns := make([]func(T), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.handlers[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(payload)
	}
}

// Len returns the number of connected handlers.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

package client

import "sync"

// Phase is the request lifecycle of a resource store:
// idle -> pending -> fulfilled or rejected, back to pending on re-invocation.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhasePending   Phase = "pending"
	PhaseFulfilled Phase = "fulfilled"
	PhaseRejected  Phase = "rejected"
)

// Store is a request-driven state container for one resource. A fulfilled
// store holds a payload, a rejected store holds an error message, never
// both.
type Store[T any] struct {
	mu      sync.Mutex
	phase   Phase
	data    T
	message string
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{phase: PhaseIdle}
}

// Run invokes fetch through the phase machine. Re-running a settled store
// re-enters pending first.
func (s *Store[T]) Run(fetch func() (T, error)) {
	s.mu.Lock()
	s.phase = PhasePending
	s.message = ""
	s.mu.Unlock()

	data, err := fetch()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		var zero T
		s.phase = PhaseRejected
		s.data = zero
		s.message = err.Error()
		return
	}
	s.phase = PhaseFulfilled
	s.data = data
}

func (s *Store[T]) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Store[T]) Data() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

func (s *Store[T]) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Reset returns the store to idle, clearing payload and message.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.phase = PhaseIdle
	s.data = zero
	s.message = ""
}

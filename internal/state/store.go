package state

import (
	"sync"

	"go.uber.org/zap"
)

// Listener is notified with every new state.
type Listener func(AppState)

// Store owns the AppState and serializes transitions through Reduce.
type Store struct {
	notifyMu  sync.Mutex
	mu        sync.RWMutex
	state     AppState
	listeners map[int]Listener
	nextID    int
	logger    *zap.Logger
}

// NewStore creates a store starting from initial.
func NewStore(initial AppState, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{state: initial, listeners: map[int]Listener{}, logger: logger}
}

// Dispatch reduces the action into the current state and notifies listeners.
// Listeners see transitions in the order they were applied and must not
// dispatch themselves.
func (s *Store) Dispatch(action Action) AppState {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	next := Reduce(s.state, action)
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	s.logger.Debug("state transition", zap.String("action", Name(action)), zap.Bool("loading", next.Loading))
	for _, l := range listeners {
		l(next)
	}
	return next
}

// Snapshot returns the current state.
func (s *Store) Snapshot() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers a listener and returns its cancel function.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

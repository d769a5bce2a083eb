package service

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/dto"
	"github.com/noah-isme/student-records/internal/state"
)

const hubClientBuffer = 1

type clientTracker interface {
	ClientConnected(delta int)
}

// StateHub fans every state transition out to connected stream clients.
// Each client holds at most one pending message, always the latest state, so a
// slow client skips intermediate states but never ends on a stale one.
type StateHub struct {
	mu      sync.Mutex
	clients map[chan []byte]struct{}
	cancel  func()
	metrics clientTracker
	logger  *zap.Logger
}

// NewStateHub subscribes a hub to store.
func NewStateHub(store *state.Store, metrics clientTracker, logger *zap.Logger) *StateHub {
	if logger == nil {
		logger = zap.NewNop()
	}
	hub := &StateHub{clients: map[chan []byte]struct{}{}, metrics: metrics, logger: logger}
	hub.cancel = store.Subscribe(hub.broadcast)
	return hub
}

// Subscribe registers a client and returns its message channel and release function.
func (h *StateHub) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, hubClientBuffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.ClientConnected(1)
	}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			if _, ok := h.clients[ch]; ok {
				delete(h.clients, ch)
				close(ch)
			}
			h.mu.Unlock()
			if h.metrics != nil {
				h.metrics.ClientConnected(-1)
			}
		})
	}
}

// Encode renders a state as a stream message.
func (h *StateHub) Encode(s state.AppState) ([]byte, error) {
	return json.Marshal(dto.NewStateView(s))
}

// Close detaches the hub from the store and disconnects every client.
func (h *StateHub) Close() {
	if h.cancel != nil {
		h.cancel()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		delete(h.clients, ch)
		close(ch)
	}
}

func (h *StateHub) broadcast(s state.AppState) {
	payload, err := h.Encode(s)
	if err != nil {
		h.logger.Warn("encode state for stream failed", zap.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- payload:
			continue
		default:
		}
		select {
		case <-ch:
			h.logger.Debug("state stream client lagging, pending state replaced")
		default:
		}
		select {
		case ch <- payload:
		default:
		}
	}
}

// Package realtime delivers chat pushes to connected WebSocket clients,
// either directly in process or relayed through Redis pub/sub.
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/logger"
)

const defaultBuffer = 32

// Frame is the envelope written to WebSocket clients.
type Frame struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// EncodeMessage builds the push frame for a stored message.
func EncodeMessage(msg *domain.Message) ([]byte, error) {
	return json.Marshal(Frame{Type: "message", Data: msg})
}

// Subscription receives the frames pushed to one username.
type Subscription struct {
	username string
	ch       chan []byte
	hub      *Hub
	once     sync.Once
}

func (s *Subscription) C() <-chan []byte { return s.ch }

func (s *Subscription) Username() string { return s.username }

// Close detaches the subscription and closes its channel. Safe to call twice.
func (s *Subscription) Close() { s.hub.Unsubscribe(s) }

// Hub tracks local subscribers per username. A user may hold several
// connections; each gets its own copy of every frame.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscription]struct{}
	buffer int
}

func NewHub() *Hub {
	return &Hub{
		subs:   make(map[string]map[*Subscription]struct{}),
		buffer: defaultBuffer,
	}
}

func (h *Hub) Subscribe(username string) *Subscription {
	s := &Subscription{
		username: username,
		ch:       make(chan []byte, h.buffer),
		hub:      h,
	}
	h.mu.Lock()
	set, ok := h.subs[username]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[username] = set
	}
	set[s] = struct{}{}
	h.mu.Unlock()
	return s
}

func (h *Hub) Unsubscribe(s *Subscription) {
	s.once.Do(func() {
		h.mu.Lock()
		if set, ok := h.subs[s.username]; ok {
			delete(set, s)
			if len(set) == 0 {
				delete(h.subs, s.username)
			}
		}
		h.mu.Unlock()
		close(s.ch)
	})
}

// Count returns the number of live subscriptions for username.
func (h *Hub) Count(username string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[username])
}

// Deliver hands payload to every local subscriber of username without
// blocking. A subscriber whose buffer is full misses the frame. It returns
// the number of subscribers reached.
func (h *Hub) Deliver(username string, payload []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for s := range h.subs[username] {
		select {
		case s.ch <- payload:
			delivered++
		default:
			logger.Log.Warn("chat subscriber buffer full, dropping frame", "username", username)
		}
	}
	return delivered
}

// Notify pushes msg to local subscribers only. Used when Redis is not configured.
func (h *Hub) Notify(_ context.Context, username string, msg *domain.Message) error {
	payload, err := EncodeMessage(msg)
	if err != nil {
		return err
	}
	h.Deliver(username, payload)
	return nil
}

package realtime

import (
	"sync"

	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/hyukkyo/demon-tournament/internal/logging"
)

// Message is the envelope pushed to websocket subscribers.
type Message struct {
	Type      string `json:"type"`
	MatchCode string `json:"match_code"`
	Payload   any    `json:"payload"`
}

const subscriberBuffer = 64

// Hub fans match messages out to the subscribers of each match channel.
type Hub struct {
	mu sync.RWMutex
	// match code -> subscriber ID -> channel
	channels map[string]map[string]chan Message
}

func NewHub() *Hub {
	return &Hub{channels: make(map[string]map[string]chan Message)}
}

// Subscribe opens a channel for subscriberID on the match. A previous
// subscription under the same ID is closed and replaced.
func (h *Hub) Subscribe(code, subscriberID string) chan Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.channels[code]
	if !ok {
		subs = make(map[string]chan Message)
		h.channels[code] = subs
	}
	if old, ok := subs[subscriberID]; ok {
		close(old)
	}
	ch := make(chan Message, subscriberBuffer)
	subs[subscriberID] = ch
	return ch
}

// Unsubscribe removes ch if it is still the current channel of
// subscriberID and reports whether it was.
func (h *Hub) Unsubscribe(code, subscriberID string, ch chan Message) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.channels[code]
	if !ok {
		return false
	}
	cur, ok := subs[subscriberID]
	if !ok || cur != ch {
		return false
	}
	close(cur)
	delete(subs, subscriberID)
	if len(subs) == 0 {
		delete(h.channels, code)
	}
	return true
}

// Publish sends a message to every subscriber of the match. Subscribers
// whose buffer is full miss the message.
func (h *Hub) Publish(code, msgType string, payload any) {
	msg := Message{Type: msgType, MatchCode: code, Payload: payload}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.channels[code] {
		select {
		case ch <- msg:
		default:
			logging.Warn("subscriber buffer full; dropping message", logging.Fields{
				constants.LogFieldMatchCode: code,
				"subscriber":                id,
			})
		}
	}
}

// Close ends every subscription of the match.
func (h *Hub) Close(code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.channels[code] {
		close(ch)
	}
	delete(h.channels, code)
}

// SubscriberCount returns the number of live subscriptions on a match.
func (h *Hub) SubscriberCount(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[code])
}

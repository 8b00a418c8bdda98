// Package events provides an in-process fan-out hub for domain events.
package events

import (
	"context"
	"sync"
	"time"
)

// DefaultBuffer is the per-subscriber queue depth used when none is given.
const DefaultBuffer = 32

// Message is the transport-neutral envelope delivered to subscribers.
type Message struct {
	Name       string    `json:"event"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload,omitempty"`
}

// Hub fans published messages out to every live subscriber.
// Slow subscribers drop messages instead of blocking publishers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uint64]chan Message
	nextID      uint64
	buffer      int
	closed      bool
}

// NewHub constructs a hub with the given per-subscriber buffer.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{subscribers: map[uint64]chan Message{}, buffer: buffer}
}

// Publish delivers msg to all subscribers without blocking.
func (h *Hub) Publish(_ context.Context, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	for _, ch := range h.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Subscribe registers a new subscriber. The returned cancel func is idempotent.
func (h *Hub) Subscribe() (<-chan Message, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan Message, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	id := h.nextID
	h.nextID++
	h.subscribers[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() { h.unsubscribe(id) })
	}
}

// Subscribers reports the number of live subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close disconnects all subscribers; later publishes are dropped.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subscribers {
		close(ch)
		delete(h.subscribers, id)
	}
}

func (h *Hub) unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subscribers[id]; ok {
		close(ch)
		delete(h.subscribers, id)
	}
}

// Package events is the in-process refresh channel between data mutations
// and the views that display counts derived from them. It replaces a global
// mutable callback: subscribers register against a topic and get every
// event published there until they cancel.
package events

import (
	"sync"

	"github.com/google/uuid"
)

// Topic names a stream of related events.
type Topic string

const (
	TopicPointages    Topic = "pointages"
	TopicEmployes     Topic = "employes"
	TopicDepartements Topic = "departements"
	TopicAuth         Topic = "auth"
)

// Event describes one mutation. Action is free-form ("created", "updated",
// "deleted", "clocked_out", "reloaded"); ID identifies the touched entity
// when there is one.
type Event struct {
	Topic  Topic
	Action string
	ID     string
}

// Subscription identifies one registered handler.
type Subscription struct {
	ID    string
	topic Topic
	bus   *Bus
}

// Cancel removes the subscription; safe to call more than once.
func (s *Subscription) Cancel() {
	s.bus.unsubscribe(s.topic, s.ID)
}

// Bus delivers events synchronously, in subscription order, on the
// publisher's goroutine. Safe for concurrent use; a handler may subscribe
// or cancel during delivery.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Topic][]busHandler
}

type busHandler struct {
	id string
	fn func(Event)
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Topic][]busHandler)}
}

func (b *Bus) Subscribe(topic Topic, fn func(Event)) *Subscription {
	id := uuid.NewString()

	b.mu.Lock()
	b.handlers[topic] = append(b.handlers[topic], busHandler{id: id, fn: fn})
	b.mu.Unlock()

	return &Subscription{ID: id, topic: topic, bus: b}
}

func (b *Bus) Publish(topic Topic, event Event) {
	event.Topic = topic

	b.mu.RLock()
	handlers := make([]busHandler, len(b.handlers[topic]))
	copy(handlers, b.handlers[topic])
	b.mu.RUnlock()

	for _, h := range handlers {
		h.fn(event)
	}
}

func (b *Bus) unsubscribe(topic Topic, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[topic]
	for i, h := range handlers {
		if h.id == id {
			b.handlers[topic] = append(handlers[:i:i], handlers[i+1:]...)
			return
		}
	}
}

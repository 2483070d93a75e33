package events

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/appstart/pkg/startup"
)

// Bus is an in-process topic bus. Publish delivers synchronously to every
// handler subscribed to the topic and records each event as a structured log
// entry, so progress is observable even with no subscribers.
type Bus struct {
	logger startup.Logger
	subs   map[string][]subscriptionEntry
	nextID int
	mu     sync.RWMutex
}

// NewBus creates an in-process event bus.
func NewBus(logger startup.Logger) *Bus {
	return &Bus{
		logger: logger,
		subs:   make(map[string][]subscriptionEntry),
	}
}

// Publish delivers the event to subscribers of the topic. Handler failures
// are logged and do not interrupt delivery to remaining subscribers.
func (b *Bus) Publish(ctx context.Context, topic string, payload interface{}) error {
	if b == nil {
		return nil
	}

	b.mu.RLock()
	handlers := append([]subscriptionEntry(nil), b.subs[topic]...)
	b.mu.RUnlock()

	if b.logger != nil {
		fields := []interface{}{"topic", topic}
		if payload != nil {
			fields = append(fields, "payload", payload)
		}
		b.logger.Debug(ctx, "startup event", fields...)
	}

	for _, entry := range handlers {
		handler := entry.handler
		if handler == nil {
			continue
		}
		if err := handler(ctx, topic, payload); err != nil && b.logger != nil {
			b.logger.Warn(ctx, "event handler failed", "topic", topic, "error", err)
		}
	}

	return nil
}

// Subscribe registers a handler for the provided topic.
func (b *Bus) Subscribe(topic string, handler startup.EventHandler) (startup.Subscription, error) {
	if b == nil || handler == nil {
		return noopSubscription{}, nil
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscriptionEntry{id: id, handler: handler})
	b.mu.Unlock()

	return subscription{
		cancel: func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			handlers := b.subs[topic]
			for i, entry := range handlers {
				if entry.id == id {
					b.subs[topic] = append(handlers[:i], handlers[i+1:]...)
					break
				}
			}
		},
	}, nil
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}

type subscription struct {
	cancel func()
}

func (s subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

type subscriptionEntry struct {
	id      int
	handler startup.EventHandler
}

var _ startup.EventBus = (*Bus)(nil)

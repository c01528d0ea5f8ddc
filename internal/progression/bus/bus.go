// Package bus provides an in-process typed publish-subscribe dispatcher for
// progression events.
//
// Managers publish journal events after a state change commits; subscribers
// (the WebSocket hub, telemetry, cross-system reactions) register per event
// type or for all types. Delivery is synchronous on the publisher's
// goroutine, and a panicking subscriber never takes down the publisher.
package bus

import (
	"log"
	"sync"

	"github.com/verdantworks/growline/internal/progression/event"
)

// Handler receives published events.
type Handler func(evt event.Event)

// Subscription identifies a registered handler for later removal.
type Subscription struct {
	eventType event.Type
	id        uint64
}

// Bus dispatches progression events to registered handlers.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	// byType holds handlers keyed by the event type they subscribed to.
	byType map[event.Type]map[uint64]Handler
	// all holds handlers subscribed to every event type.
	all map[uint64]Handler
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{
		byType: make(map[event.Type]map[uint64]Handler),
		all:    make(map[uint64]Handler),
	}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(eventType event.Type, handler Handler) Subscription {
	if handler == nil || !eventType.IsValid() {
		return Subscription{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	handlers, ok := b.byType[eventType]
	if !ok {
		handlers = make(map[uint64]Handler)
		b.byType[eventType] = handlers
	}
	handlers[b.nextID] = handler
	return Subscription{eventType: eventType, id: b.nextID}
}

// SubscribeAll registers a handler for every event type.
func (b *Bus) SubscribeAll(handler Handler) Subscription {
	if handler == nil {
		return Subscription{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.all[b.nextID] = handler
	return Subscription{id: b.nextID}
}

// Unsubscribe removes a previously registered handler.
func (b *Bus) Unsubscribe(sub Subscription) {
	if sub.id == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if sub.eventType.IsValid() {
		if handlers, ok := b.byType[sub.eventType]; ok {
			delete(handlers, sub.id)
			if len(handlers) == 0 {
				delete(b.byType, sub.eventType)
			}
		}
		return
	}
	delete(b.all, sub.id)
}

// Publish delivers the event to every matching handler synchronously.
// Handler panics are recovered and logged so one subscriber cannot break
// the publishing manager.
func (b *Bus) Publish(evt event.Event) {
	if !evt.Type.IsValid() {
		return
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.all)+len(b.byType[evt.Type]))
	for _, handler := range b.byType[evt.Type] {
		handlers = append(handlers, handler)
	}
	for _, handler := range b.all {
		handlers = append(handlers, handler)
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		dispatch(handler, evt)
	}
}

func dispatch(handler Handler, evt event.Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("bus: handler panic on %s: %v", evt.Type, r)
		}
	}()
	handler(evt)
}

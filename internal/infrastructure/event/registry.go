package event

import (
	"sync"

	"github.com/craftshop/backend/internal/domain/shared"
)

// allEvents is the registration key for handlers that want every event,
// such as the activity log.
const allEvents = "*"

// handlerTable tracks which handlers receive which event types.
// Safe for concurrent Subscribe/Publish from HTTP handlers.
type handlerTable struct {
	mu     sync.RWMutex
	byType map[string][]shared.EventHandler
}

func newHandlerTable() *handlerTable {
	return &handlerTable{byType: make(map[string][]shared.EventHandler)}
}

// add registers the handler under each event type; with no types it is
// registered as a catch-all.
func (t *handlerTable) add(handler shared.EventHandler, eventTypes ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(eventTypes) == 0 {
		eventTypes = []string{allEvents}
	}
	for _, eventType := range eventTypes {
		t.byType[eventType] = append(t.byType[eventType], handler)
	}
}

// remove drops the handler from every event type it was registered under.
func (t *handlerTable) remove(handler shared.EventHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for eventType, handlers := range t.byType {
		kept := handlers[:0]
		for _, h := range handlers {
			if h != handler {
				kept = append(kept, h)
			}
		}
		if len(kept) == 0 {
			delete(t.byType, eventType)
		} else {
			t.byType[eventType] = kept
		}
	}
}

// handlersFor returns the handlers registered for the event type plus
// the catch-all handlers, in registration order.
func (t *handlerTable) handlersFor(eventType string) []shared.EventHandler {
	t.mu.RLock()
	defer t.mu.RUnlock()

	typed := t.byType[eventType]
	catchAll := t.byType[allEvents]
	out := make([]shared.EventHandler, 0, len(typed)+len(catchAll))
	out = append(out, typed...)
	out = append(out, catchAll...)
	return out
}

package shared

import "context"

// EventHandler consumes domain events. The activity log is the main
// implementation; it subscribes to everything.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes names the event types this handler wants. Empty
	// means all of them.
	EventTypes() []string
}

// EventPublisher is the side the application services see: they
// publish the aggregate's queued events after commit.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber is the side the server wiring sees.
type EventSubscriber interface {
	// Subscribe registers a handler. Without explicit event types the
	// handler's own EventTypes decide.
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is both halves plus lifecycle, so implementations backed
// by an external broker can connect and drain.
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

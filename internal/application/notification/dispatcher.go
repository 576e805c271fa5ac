// Package notification turns domain events into emails. The Dispatcher is
// handed to services as their shared.EventPublisher; mail and lookup
// failures are logged and never reach the publishing service.
package notification

import (
	"context"
	"fmt"

	"github.com/shopfeed/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// EventHandler reacts to events of the types it lists
type EventHandler interface {
	EventTypes() []string
	Handle(ctx context.Context, event shared.DomainEvent) error
}

// Dispatcher routes published events to their handlers
type Dispatcher struct {
	handlers map[string][]EventHandler
	logger   *zap.Logger
}

// NewDispatcher creates a dispatcher for the given handlers
func NewDispatcher(logger *zap.Logger, handlers ...EventHandler) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{handlers: make(map[string][]EventHandler), logger: logger}
	for _, h := range handlers {
		d.Register(h)
	}
	return d
}

// Register adds a handler for every event type it lists
func (d *Dispatcher) Register(h EventHandler) {
	for _, t := range h.EventTypes() {
		d.handlers[t] = append(d.handlers[t], h)
	}
}

// Publish implements shared.EventPublisher. It always returns nil.
func (d *Dispatcher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		for _, h := range d.handlers[event.EventType()] {
			if err := d.handle(ctx, h, event); err != nil {
				d.logger.Error("Notification failed",
					zap.String("event_type", event.EventType()),
					zap.String("aggregate_id", event.AggregateID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

func (d *Dispatcher) handle(ctx context.Context, h EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h.Handle(ctx, event)
}

var _ shared.EventPublisher = (*Dispatcher)(nil)

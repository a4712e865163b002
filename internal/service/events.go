package service

import (
	"context"

	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/pkg/events"
)

// EventPublisher is satisfied by the NATS publisher. It may be nil when no bus is configured.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// publishEvent is fire and forget: domain events are auxiliary to the request.
func publishEvent(ctx context.Context, publisher EventPublisher, log logger.ILogger, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

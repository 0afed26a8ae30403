package service

import (
	"context"

	"viewset-bot/pkg/events"
)

// EventPublisher forwards domain events to the message bus. Implemented by
// the NATS publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

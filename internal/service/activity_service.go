package service

import (
	"context"

	"viewset-bot/internal/pkg/logger"
	"viewset-bot/pkg/events"
	pktNats "viewset-bot/pkg/nats"
)

// StaffFeed pushes live activity to connected staff consoles. Implemented
// by the websocket hub.
type StaffFeed interface {
	BroadcastStaff(kind string, data map[string]interface{})
}

// EventSubscriber is the subscribing half of the message bus.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject, durableName string, handler pktNats.EventHandler) error
}

// ActivityService relays bot activity from the bus to staff consoles, so
// every instance's console sees traffic served by any instance.
type ActivityService struct {
	subscriber EventSubscriber
	feed       StaffFeed
	logger     logger.ILogger
}

func NewActivityService(sub EventSubscriber, feed StaffFeed, log logger.ILogger) *ActivityService {
	return &ActivityService{subscriber: sub, feed: feed, logger: log}
}

// Start begins listening to the event bus.
func (s *ActivityService) Start(ctx context.Context) {
	subjects := map[string]string{
		events.BotAction:         "bot-activity-actions",
		events.ParticipantJoined: "bot-activity-joins",
	}
	for eventType, durable := range subjects {
		if err := s.subscriber.Subscribe(ctx, pktNats.Subject(eventType), durable, s.handleEvent); err != nil {
			s.logger.Error("ActivityService", "Failed to start activity subscriber", map[string]interface{}{
				"subject": eventType,
				"error":   err.Error(),
			})
			continue
		}
	}
	s.logger.Info("ActivityService", "Activity feed started", nil)
}

func (s *ActivityService) handleEvent(_ context.Context, event events.Event) error {
	data := map[string]interface{}{}
	for k, v := range event.Payload() {
		data[k] = v
	}
	data["occurred_at"] = events.OccurredAt(event)
	s.feed.BroadcastStaff(event.EventType(), data)
	return nil
}

package events

import (
	"strconv"
	"time"
)

const (
	// BotAction is published for every handled route.
	BotAction = "BOT_ACTION"
	// ParticipantJoined is published when a participant is seen for the first time.
	ParticipantJoined = "PARTICIPANT_JOINED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "BOT_ACTION").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewBotAction builds the event for one handled route. The participant id
// travels as a string so JSON consumers do not lose int64 precision.
func NewBotAction(participantID int64, route string, at time.Time) BaseEvent {
	return BaseEvent{
		Type: BotAction,
		Data: map[string]interface{}{
			"participant_id": strconv.FormatInt(participantID, 10),
			"route":          route,
			"occurred_at":    at.UTC().Format(time.RFC3339Nano),
		},
		OccurredAt: at,
	}
}

func NewParticipantJoined(participantID int64, username, deepLink string, at time.Time) BaseEvent {
	return BaseEvent{
		Type: ParticipantJoined,
		Data: map[string]interface{}{
			"participant_id": strconv.FormatInt(participantID, 10),
			"username":       username,
			"deep_link":      deepLink,
			"occurred_at":    at.UTC().Format(time.RFC3339Nano),
		},
		OccurredAt: at,
	}
}

// ParticipantID reads the participant id back from a decoded payload.
func ParticipantID(e Event) (int64, bool) {
	raw, ok := e.Payload()["participant_id"].(string)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil
}

// OccurredAt prefers the timestamp carried in the payload over the local
// receive time.
func OccurredAt(e Event) time.Time {
	if raw, ok := e.Payload()["occurred_at"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return t
		}
	}
	return e.Timestamp()
}

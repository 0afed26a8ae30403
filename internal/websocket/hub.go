package websocket

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"viewset-bot/internal/pkg/logger"
	"viewset-bot/pkg/bot"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "bot_cluster_events"

// InboundHandler receives events typed into a chat console.
type InboundHandler func(ctx context.Context, event *bot.Event)

type Hub struct {
	// Registered clients map: ParticipantID -> List of Clients (multi-device)
	clients map[int64][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance delivery
	rdb *redis.Client

	// instanceID tags redis messages so an instance skips its own.
	instanceID string

	inbound InboundHandler
	logger  logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[int64][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// OnInbound sets the handler for console input. Call before Run.
func (h *Hub) OnInbound(fn InboundHandler) {
	h.inbound = fn
}

func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ParticipantID] = append(h.clients[client.ParticipantID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"participant_id": client.ParticipantID})

		case client := <-h.unregister:
			h.mu.Lock()
			clients := h.clients[client.ParticipantID]
			for i, c := range clients {
				if c == client {
					h.clients[client.ParticipantID] = append(clients[:i], clients[i+1:]...)
					close(client.Send)
					break
				}
			}
			if len(h.clients[client.ParticipantID]) == 0 {
				delete(h.clients, client.ParticipantID)
				h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"participant_id": client.ParticipantID})
			}
			h.mu.Unlock()
		}
	}
}

// Outbound is the envelope of every frame sent to a console.
type Outbound struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// MessageFrame is a bot reply. EditMessageID is set when the reply should
// replace the message whose button was pressed.
type MessageFrame struct {
	Text          string       `json:"text"`
	Buttons       bot.Keyboard `json:"buttons,omitempty"`
	EditMessageID int64        `json:"edit_message_id,omitempty"`
}

// Render delivers a reply to every console of the actor, on this and other
// instances. It implements bot.Delivery.
func (h *Hub) Render(ctx context.Context, actor bot.Actor, event *bot.Event, resp *bot.Response) error {
	frame := MessageFrame{Text: resp.Text, Buttons: resp.Buttons}
	if event != nil && event.IsCallback() && !resp.OnlySend {
		frame.EditMessageID = event.MessageID
	}
	data, err := json.Marshal(Outbound{Type: "message", Data: frame})
	if err != nil {
		return err
	}

	h.deliverLocal(actor.ID, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterPayload{
			Origin:        h.instanceID,
			ParticipantID: strconv.FormatInt(actor.ID, 10),
			Message:       data,
		})
		if err := h.rdb.Publish(ctx, clusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to publish delivery to cluster", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

// BroadcastStaff pushes a frame to local staff consoles only. Every instance
// receives bus events itself, so nothing is relayed through redis.
func (h *Hub) BroadcastStaff(kind string, data map[string]interface{}) {
	frame, err := json.Marshal(Outbound{Type: kind, Data: data})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.clients {
		for _, c := range clients {
			if c.IsStaff {
				h.push(c, frame)
			}
		}
	}
}

// Connected reports how many consoles a participant has open here.
func (h *Hub) Connected(participantID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[participantID])
}

func (h *Hub) deliverLocal(participantID int64, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients[participantID] {
		h.push(c, data)
	}
}

// push never blocks; a console that cannot keep up is dropped. Callers hold
// the read lock so Send cannot be closed underneath.
func (h *Hub) push(c *Client, data []byte) {
	select {
	case c.Send <- data:
	default:
		h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"participant_id": c.ParticipantID})
		go func() { h.unregister <- c }()
	}
}

func (h *Hub) dispatchInbound(ctx context.Context, event *bot.Event) {
	if h.inbound == nil {
		h.logger.Warn("Hub", "Inbound event without handler", map[string]interface{}{"participant_id": event.ParticipantID})
		return
	}
	h.inbound(ctx, event)
}

type clusterPayload struct {
	Origin        string          `json:"origin"`
	ParticipantID string          `json:"participant_id"`
	Message       json.RawMessage `json:"message"`
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterPayload
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		if payload.Origin == h.instanceID {
			continue
		}
		id, err := strconv.ParseInt(payload.ParticipantID, 10, 64)
		if err != nil {
			continue
		}
		h.deliverLocal(id, payload.Message)
	}
}

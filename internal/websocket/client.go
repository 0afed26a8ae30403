package websocket

import (
	"context"
	"encoding/json"
	"time"

	"viewset-bot/pkg/bot"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Identity is who a console connection speaks for, taken from its token.
type Identity struct {
	ParticipantID int64
	Username      string
	FirstName     string
	LanguageCode  string
	IsStaff       bool
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn

	Identity

	// Buffered channel of outbound messages.
	Send chan []byte
}

// Inbound is a frame typed into the console: {"type":"text","text":"/start"}
// or {"type":"callback","data":"cat/sl&1","message_id":3}.
type Inbound struct {
	Type      string `json:"type"`
	Text      string `json:"text"`
	Data      string `json:"data"`
	MessageID int64  `json:"message_id"`
}

// Event converts the frame for the dispatcher. ok is false for unknown types.
func (in Inbound) Event(id Identity) (*bot.Event, bool) {
	event := &bot.Event{
		ParticipantID: id.ParticipantID,
		Username:      id.Username,
		FirstName:     id.FirstName,
		LanguageCode:  id.LanguageCode,
		MessageID:     in.MessageID,
	}
	switch in.Type {
	case "text":
		if in.Text == "" {
			return nil, false
		}
		event.Text = in.Text
	case "callback":
		if in.Data == "" {
			return nil, false
		}
		event.CallbackData = in.Data
	default:
		return nil, false
	}
	return event, true
}

// readPump pumps messages from the websocket connection to the hub.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Client", "Unexpected close", map[string]interface{}{
					"participant_id": c.ParticipantID,
					"error":          err.Error(),
				})
			}
			break
		}

		var in Inbound
		if err := json.Unmarshal(raw, &in); err != nil {
			c.Hub.logger.Debug("Client", "Ignoring malformed frame", map[string]interface{}{"participant_id": c.ParticipantID})
			continue
		}
		if event, ok := in.Event(c.Identity); ok {
			c.Hub.dispatchInbound(ctx, event)
		}
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One frame per message: consoles parse each frame as JSON.
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package websocket

import (
	"context"

	"github.com/gofiber/websocket/v2"
)

// ServeWs registers the connection and blocks until it closes.
func ServeWs(ctx context.Context, hub *Hub, c *websocket.Conn, id Identity) {
	client := &Client{
		Hub:      hub,
		Conn:     c,
		Identity: id,
		Send:     make(chan []byte, 256),
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump(ctx)
}

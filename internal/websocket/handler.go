package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches one lender connection to the hub and blocks until the
// connection closes.
func ServeWs(hub *Hub, c *websocket.Conn, lenderID uuid.UUID) {
	client := &Client{Hub: hub, Conn: c, LenderID: lenderID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}

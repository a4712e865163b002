package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs greets the connection, registers it and blocks until it closes.
func ServeWs(hub *Hub, c *websocket.Conn, userID uuid.UUID) {
	client := newClient(hub, c, userID)

	hello, _ := AuthFrame(AuthSignedIn).encode()
	client.trySend(hello)

	if !hub.join(client) {
		client.close()
		c.Close()
		return
	}

	go client.writePump()
	client.readPump()
}

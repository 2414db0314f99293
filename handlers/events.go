package handlers

import (
	"log"

	"songbook/websocket"

	"github.com/gin-gonic/gin"
)

// EventHandler handles WebSocket subscriptions to catalog changes
type EventHandler struct {
	hub websocket.Hub
}

// NewEventHandler creates a new event handler
func NewEventHandler(hub websocket.Hub) *EventHandler {
	return &EventHandler{hub: hub}
}

// Subscribe upgrades the connection and streams catalog change events
func (h *EventHandler) Subscribe(c *gin.Context) {
	upgrader := websocket.GetUpgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn)
	h.hub.RegisterClient(client)

	client.StartPumps()
}

package controller

import (
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// TaskEvent is one entry on the live task-event feed
type TaskEvent struct {
	Type      string `json:"type"` // task.created, task.updated, task.deleted
	TaskID    uint   `json:"task_id"`
	ProjectID uint   `json:"project_id"`
	TeamID    uint   `json:"team_id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
}

// EventHub fans task events out to connected websocket clients
type EventHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewEventHub() *EventHub {
	return &EventHub{
		conns: make(map[*websocket.Conn]bool),
	}
}

// Broadcast writes the event to every connected client, dropping
// connections whose writes fail.
func (h *EventHub) Broadcast(event TaskEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Error writing event: %v", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *EventHub) register(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()
}

func (h *EventHub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}

// HandleEventsWS keeps a client subscribed to the event feed until it
// disconnects.
func (h *EventHub) HandleEventsWS(c *websocket.Conn) {
	h.register(c)
	defer func() {
		h.unregister(c)
		c.Close()
	}()

	// Drain client messages; the feed is one-way
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

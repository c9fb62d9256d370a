// Package feed streams operation state changes to desktop clients over
// a local websocket endpoint.
package feed

import (
	"log/slog"

	"github.com/huntboard/huntboard/internal/ops"
)

// Hub fans operation snapshots out to connected clients. It is fed from
// the tracker's listener and must never block it: a slow client's buffer
// overflowing drops frames for that client only.
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan ops.Operation
	clients    map[*client]bool
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan ops.Operation, 256),
		clients:    make(map[*client]bool),
	}
}

// Publish queues one snapshot for broadcast. Non-blocking: if the hub's
// buffer is full the frame is dropped.
func (h *Hub) Publish(op ops.Operation) {
	select {
	case h.broadcast <- op:
	default:
		slog.Warn("Feed buffer full, dropping frame", "op", op.ID)
	}
}

// Run is the hub's single serialization loop. It owns the clients map;
// nothing else touches it.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			slog.Debug("Feed client connected", "clients", len(h.clients))

		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}

		case op := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- op:
				default:
					// Slow client: disconnect rather than stall the hub.
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

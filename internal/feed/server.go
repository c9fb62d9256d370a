package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/huntboard/huntboard/internal/ops"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// client is one connected websocket consumer.
type client struct {
	conn *websocket.Conn
	send chan ops.Operation
}

// writePump drains the client's send buffer onto the wire.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case op, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(op); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Server exposes the operations feed on a loopback websocket endpoint.
type Server struct {
	hub     *Hub
	tracker *ops.Tracker
	addr    string
	httpSrv *http.Server
}

// NewServer wires a Server to the tracker: every tracker state change is
// published to the hub.
func NewServer(tracker *ops.Tracker, hub *Hub, host string, port int) *Server {
	s := &Server{
		hub:     hub,
		tracker: tracker,
		addr:    fmt.Sprintf("%s:%d", host, port),
	}
	tracker.AddListener(hub.Publish)
	return s
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Loopback-only server; the desktop shell is the one expected origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleOps upgrades the connection, replays the current operation list,
// then streams live updates.
func (s *Server) handleOps(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Feed upgrade failed", "err", err)
		return
	}

	c := &client{conn: conn, send: make(chan ops.Operation, 64)}

	// Replay before registering so the snapshot precedes live frames.
	for _, op := range s.tracker.Operations() {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(op); err != nil {
			conn.Close()
			return
		}
	}

	s.hub.register <- c
	go c.writePump()

	// Reader loop: we expect no client frames, but reading drives
	// close/ping-pong handling.
	go func() {
		defer func() { s.hub.unregister <- c }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Start runs the hub and the HTTP listener until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ops", s.handleOps)

	s.httpSrv = &http.Server{Addr: s.addr, Handler: mux}

	go s.hub.Run()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpSrv.Shutdown(shutdownCtx)
	}()

	slog.Info("Operations feed listening", "addr", s.addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("feed server: %w", err)
	}
	return nil
}

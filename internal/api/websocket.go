package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nerrad567/wallpanel-core/internal/infrastructure/logging"
	"github.com/nerrad567/wallpanel-core/internal/status"
)

// clientSendBuffer is the per-client outbound queue depth. Clients that
// fall this far behind are disconnected rather than blocking the hub.
const clientSendBuffer = 16

// wsWriteTimeout bounds each frame write to a client.
const wsWriteTimeout = 10 * time.Second

// upgrader promotes HTTP connections to WebSocket. Origin checks are
// disabled to match the wide-open CORS policy on the REST surface.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// statusFrame is the message pushed to WebSocket clients.
type statusFrame struct {
	Type      string          `json:"type"`
	Status    status.Snapshot `json:"status"`
	Timestamp int64           `json:"timestamp"`
}

// wsClient is a single connected WebSocket consumer.
type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// hub tracks connected WebSocket clients and fans status frames out to
// them. All methods are safe for concurrent use.
type hub struct {
	logger *logging.Logger

	mu      sync.RWMutex
	clients map[*wsClient]struct{}
	closed  bool
}

// newHub creates an empty client hub.
func newHub(logger *logging.Logger) *hub {
	return &hub{
		logger:  logger,
		clients: make(map[*wsClient]struct{}),
	}
}

// register adds a client. Returns false if the hub is already closed.
func (h *hub) register(c *wsClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

// unregister removes a client and closes its send channel exactly once.
func (h *hub) unregister(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// broadcastSnapshot marshals the snapshot into a status frame and queues
// it on every connected client. Clients with a full queue are dropped.
func (h *hub) broadcastSnapshot(snap status.Snapshot) {
	frame := statusFrame{
		Type:      "status",
		Status:    snap,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(frame)
	if err != nil {
		h.logger.Error("failed to marshal status frame", "error", err)
		return
	}

	h.mu.RLock()
	slow := make([]*wsClient, 0)
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("dropping slow websocket client")
		h.unregister(c)
	}
}

// clientCount returns the number of connected clients.
func (h *hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// closeAll disconnects every client and refuses new registrations.
func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// handleWebSocket upgrades GET /api/ws and streams status frames until
// the client disconnects or the server shuts down.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan []byte, clientSendBuffer),
	}

	if !s.hub.register(client) {
		//nolint:errcheck // Closing a refused connection
		conn.Close()
		return
	}

	s.logger.Debug("websocket client connected",
		"remote", conn.RemoteAddr().String(),
		"clients", s.hub.clientCount(),
	)

	// Send the current snapshot immediately so new clients do not wait
	// a full broadcast interval for their first frame.
	s.hub.broadcastSnapshot(s.provider.Snapshot())

	go s.writeClient(client)
	s.readClient(client)
}

// writeClient drains the client's send channel onto the wire. Exits when
// the channel closes (unregister) or a write fails.
func (s *Server) writeClient(c *wsClient) {
	defer func() {
		//nolint:errcheck // Teardown path
		c.conn.Close()
	}()

	for data := range c.send {
		//nolint:errcheck // A failed deadline surfaces as a write error
		c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.hub.unregister(c)
			return
		}
	}

	//nolint:errcheck // Best-effort close frame
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(wsWriteTimeout))
}

// readClient consumes and discards inbound frames. The stream is one-way;
// reading is only needed to notice disconnects and answer pings.
func (s *Server) readClient(c *wsClient) {
	defer s.hub.unregister(c)

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
